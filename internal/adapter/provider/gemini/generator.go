// Package gemini generates itineraries with the Google Gemini API.
package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/heartmarshall/tripplanner-backend/internal/domain"
	"github.com/heartmarshall/tripplanner-backend/internal/provider"
)

const defaultTimeout = 60 * time.Second

// Config configures a Generator.
type Config struct {
	APIKey          string
	BaseURL         string
	Model           string
	Temperature     float32
	TopP            float32
	TopK            float32
	MaxOutputTokens int32
	Timeout         time.Duration
	MaxRetries      int
}

// Generator asks Gemini for an itinerary and returns the raw JSON text.
type Generator struct {
	client  *genai.Client
	model   string
	genCfg  *genai.GenerateContentConfig
	timeout time.Duration
	retry   provider.RetryPolicy
	log     *slog.Logger
}

// NewGenerator creates a Generator backed by the Gemini API.
func NewGenerator(ctx context.Context, cfg Config, logger *slog.Logger) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("gemini: model is required")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Generator{
		client: client,
		model:  cfg.Model,
		genCfg: &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			Temperature:      genai.Ptr(cfg.Temperature),
			TopP:             genai.Ptr(cfg.TopP),
			TopK:             genai.Ptr(cfg.TopK),
			MaxOutputTokens:  cfg.MaxOutputTokens,
		},
		timeout: timeout,
		retry:   provider.RetryPolicy{Attempts: cfg.MaxRetries},
		log:     logger.With("adapter", "gemini"),
	}, nil
}

// Generate returns the model's JSON answer for trip.
func (g *Generator) Generate(ctx context.Context, trip domain.Trip) ([]byte, error) {
	prompt := provider.ItineraryPrompt(trip)

	g.log.DebugContext(ctx, "gemini request",
		slog.String("model", g.model),
		slog.String("destination", trip.Destination.DisplayName()),
		slog.Int("days", trip.DayCount()),
	)

	start := time.Now()
	out, err := g.retry.Do(ctx, g.log, "gemini generate", func(ctx context.Context) ([]byte, error) {
		return g.call(ctx, prompt)
	})
	if err != nil {
		g.log.ErrorContext(ctx, "gemini generation failed", slog.String("error", err.Error()))
		return nil, err
	}

	g.log.DebugContext(ctx, "gemini response",
		slog.Int("bytes", len(out)),
		slog.Duration("took", time.Since(start)),
	)
	return out, nil
}

func (g *Generator) call(ctx context.Context, prompt string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: prompt}}}},
		g.genCfg,
	)
	if err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, provider.ErrEmptyResponse
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return nil, provider.ErrEmptyResponse
	}
	return []byte(b.String()), nil
}
