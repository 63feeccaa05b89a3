package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"gemini-media-bot/utils"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is used when no model name is configured.
const DefaultGeminiModel = "gemini-1.5-flash"

// Gemini implements Model on top of the Gemini API.
type Gemini struct {
	client  *genai.Client
	model   string
	logger  zerolog.Logger
	limiter *rate.Limiter
	timeout time.Duration
	retry   *utils.RetryConfig
}

type GeminiOption func(*Gemini)

// WithGeminiLogger sets the logger for request tracing.
func WithGeminiLogger(logger zerolog.Logger) GeminiOption {
	return func(g *Gemini) { g.logger = logger }
}

// WithGeminiRateLimit caps requests per second towards the API.
func WithGeminiRateLimit(rps float64, burst int) GeminiOption {
	return func(g *Gemini) { g.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// WithGeminiTimeout sets the per-call timeout.
func WithGeminiTimeout(d time.Duration) GeminiOption {
	return func(g *Gemini) { g.timeout = d }
}

// WithGeminiRetry overrides the transport retry policy.
func WithGeminiRetry(config *utils.RetryConfig) GeminiOption {
	return func(g *Gemini) { g.retry = config }
}

// NewGemini creates a Gemini-backed model client. The API key is required.
func NewGemini(ctx context.Context, apiKey, model string, opts ...GeminiOption) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: API key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	g := &Gemini{
		client:  client,
		model:   model,
		logger:  zerolog.Nop(),
		limiter: rate.NewLimiter(rate.Inf, 0),
		timeout: 2 * time.Minute,
		retry:   utils.DefaultRetryConfig(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// GenerateContent sends the parts to the model and returns the generated
// text, which may be empty when every candidate was filtered out.
func (g *Gemini) GenerateContent(ctx context.Context, parts []Part, opts GenerateOptions) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("gemini: rate limit: %w", err)
	}

	sdkParts, err := toGenaiParts(parts)
	if err != nil {
		return "", err
	}

	m := g.client.GenerativeModel(g.model)
	m.SetMaxOutputTokens(opts.MaxOutputTokens)
	m.SetTemperature(opts.Temperature)
	if opts.SystemInstruction != "" {
		m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(opts.SystemInstruction)}}
	}

	start := time.Now()
	var resp *genai.GenerateContentResponse
	err = utils.WithRetry(func() error {
		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()

		r, err := m.GenerateContent(callCtx, sdkParts...)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			g.logger.Debug().Err(err).Str("model", g.model).Msg("gemini request failed, retrying")
			return err
		}
		resp = r
		return nil
	}, g.retry)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	text := collectText(resp)
	g.logger.Debug().
		Str("model", g.model).
		Dur("latency", time.Since(start)).
		Int("response_chars", len(text)).
		Msg("gemini request completed")
	return text, nil
}

// Close releases the underlying API client.
func (g *Gemini) Close() error {
	return g.client.Close()
}

// toGenaiParts maps boundary parts onto SDK parts. Inline payloads arrive
// base64-encoded and the SDK wants raw bytes.
func toGenaiParts(parts []Part) ([]genai.Part, error) {
	out := make([]genai.Part, 0, len(parts))
	for i, p := range parts {
		if !p.IsMedia() {
			out = append(out, genai.Text(p.Text))
			continue
		}
		raw, err := base64.StdEncoding.DecodeString(p.Data)
		if err != nil {
			return nil, fmt.Errorf("gemini: decode part %d: %w", i, err)
		}
		out = append(out, genai.Blob{MIMEType: p.MIMEType, Data: raw})
	}
	return out, nil
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text += string(t)
		}
	}
	return text
}
