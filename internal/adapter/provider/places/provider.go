// Package places looks up points of interest in the Google Places API and
// turns them into domain.Place values with a ready-to-use photo URL.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/heartmarshall/tripplanner-backend/internal/domain"
)

const (
	defaultBaseURL   = "https://maps.googleapis.com/maps/api/place"
	defaultTimeout   = 10 * time.Second
	defaultCacheSize = 1024
	photoMaxWidth    = "800"
	retryDelay       = 500 * time.Millisecond
)

// Config configures a Provider.
type Config struct {
	APIKey    string
	BaseURL   string
	CacheSize int
	Timeout   time.Duration
}

// cacheEntry remembers a lookup. A nil place is a cached miss.
type cacheEntry struct {
	place *domain.Place
}

// Provider resolves free-text queries to places.
type Provider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      *lru.Cache[string, cacheEntry]
	log        *slog.Logger
}

// NewProvider creates a Provider. Empty fields in cfg get defaults.
func NewProvider(cfg Config, logger *slog.Logger) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("places: api key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = defaultCacheSize
	}

	cache, err := lru.New[string, cacheEntry](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("places: create cache: %w", err)
	}

	return &Provider{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cache:      cache,
		log:        logger.With("adapter", "places"),
	}, nil
}

// FindPlace returns the best match for query. Returns an error wrapping
// domain.ErrPlaceNotFound when the API has no candidate.
func (p *Provider) FindPlace(ctx context.Context, query string) (*domain.Place, error) {
	key := strings.ToLower(strings.TrimSpace(query))
	if key == "" {
		return nil, fmt.Errorf("places: empty query: %w", domain.ErrPlaceNotFound)
	}

	if e, ok := p.cache.Get(key); ok {
		if e.place == nil {
			return nil, fmt.Errorf("places %q: %w", query, domain.ErrPlaceNotFound)
		}
		out := *e.place
		return &out, nil
	}

	place, err := p.fetch(ctx, query)
	if err != nil {
		return nil, err
	}

	p.cache.Add(key, cacheEntry{place: place})
	if place == nil {
		return nil, fmt.Errorf("places %q: %w", query, domain.ErrPlaceNotFound)
	}
	out := *place
	return &out, nil
}

// fetch calls findplacefromtext. Returns nil, nil on ZERO_RESULTS.
func (p *Provider) fetch(ctx context.Context, query string) (*domain.Place, error) {
	params := url.Values{}
	params.Set("input", query)
	params.Set("inputtype", "textquery")
	params.Set("fields", "place_id,name,formatted_address,geometry,photos")
	params.Set("key", p.apiKey)
	reqURL := p.baseURL + "/findplacefromtext/json?" + params.Encode()

	p.log.DebugContext(ctx, "places request", slog.String("query", query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("places: create request: %w", err)
	}

	resp, err := p.doWithRetry(ctx, req, query)
	if err != nil {
		p.log.ErrorContext(ctx, "places request failed", slog.String("query", query), slog.String("error", err.Error()))
		return nil, fmt.Errorf("places: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("places: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("places: read body: %w", err)
	}

	var out apiFindPlaceResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("places: decode json: %w", err)
	}

	switch out.Status {
	case statusOK:
	case statusZeroResults:
		return nil, nil
	default:
		return nil, fmt.Errorf("places: api status %s: %s", out.Status, out.ErrorMessage)
	}
	if len(out.Candidates) == 0 {
		return nil, nil
	}

	place := p.mapCandidate(out.Candidates[0])

	p.log.DebugContext(ctx, "places response",
		slog.String("query", query),
		slog.String("place_id", place.PlaceID),
		slog.Bool("photo", place.PhotoURL != ""),
	)
	return place, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (p *Provider) doWithRetry(ctx context.Context, req *http.Request, query string) (*http.Response, error) {
	resp, err := p.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "places retry", slog.String("query", query), slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(retryDelay):
	}

	return p.httpClient.Do(req)
}

func (p *Provider) mapCandidate(c apiCandidate) *domain.Place {
	place := &domain.Place{
		PlaceID: c.PlaceID,
		Name:    c.Name,
		Address: c.FormattedAddress,
	}
	if loc := c.Geometry.Location; loc != nil {
		place.Coordinates = &domain.Coordinates{Lat: loc.Lat, Lng: loc.Lng}
	}
	for _, ph := range c.Photos {
		if ph.PhotoReference != "" {
			place.PhotoURL = p.photoURL(ph.PhotoReference)
			break
		}
	}
	return place
}

// photoURL builds the Place Photo URL for a photo reference.
func (p *Provider) photoURL(ref string) string {
	params := url.Values{}
	params.Set("maxwidth", photoMaxWidth)
	params.Set("photo_reference", ref)
	params.Set("key", p.apiKey)
	return p.baseURL + "/photo?" + params.Encode()
}
