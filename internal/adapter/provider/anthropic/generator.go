// Package anthropic generates itineraries with the Claude Messages API.
package anthropic

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/tripplanner-backend/internal/domain"
	"github.com/heartmarshall/tripplanner-backend/internal/provider"
)

const (
	defaultMaxTokens = 8192
	defaultTimeout   = 90 * time.Second
)

// Config configures a Generator.
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	MaxTokens  int64
	Timeout    time.Duration
	MaxRetries int
}

// Generator asks Claude for an itinerary and returns the raw answer text.
type Generator struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	retry     provider.RetryPolicy
	log       *slog.Logger
}

// NewGenerator creates a Generator. Retries are done here, not by the SDK.
func NewGenerator(cfg Config, logger *slog.Logger) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic: api key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("anthropic: model is required")
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(cfg.Timeout),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Generator{
		client:    anthropic.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		retry:     provider.RetryPolicy{Attempts: cfg.MaxRetries},
		log:       logger.With("adapter", "anthropic"),
	}, nil
}

// Generate returns the model's answer for trip. The answer may still carry
// prose around the JSON; callers extract it.
func (g *Generator) Generate(ctx context.Context, trip domain.Trip) ([]byte, error) {
	prompt := provider.ItineraryPrompt(trip)

	g.log.DebugContext(ctx, "anthropic request",
		slog.String("model", g.model),
		slog.String("destination", trip.Destination.DisplayName()),
		slog.Int("days", trip.DayCount()),
	)

	start := time.Now()
	out, err := g.retry.Do(ctx, g.log, "anthropic generate", func(ctx context.Context) ([]byte, error) {
		return g.call(ctx, prompt)
	})
	if err != nil {
		g.log.ErrorContext(ctx, "anthropic generation failed", slog.String("error", err.Error()))
		return nil, err
	}

	g.log.DebugContext(ctx, "anthropic response",
		slog.Int("bytes", len(out)),
		slog.Duration("took", time.Since(start)),
	)
	return out, nil
}

func (g *Generator) call(ctx context.Context, prompt string) ([]byte, error) {
	msg, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: g.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return nil, provider.ErrEmptyResponse
	}
	return []byte(b.String()), nil
}
