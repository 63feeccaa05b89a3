package bot

import (
	"context"
	"errors"
	"strings"
	"time"

	"gemini-media-bot/ai"
	"gemini-media-bot/cache"
	"gemini-media-bot/media"

	"github.com/rs/zerolog"
)

const (
	// synthesisAttempts is the total number of generation attempts made
	// before giving up on a blank reply (initial call plus four retries).
	synthesisAttempts = 5
	// synthesisMaxTokens caps the final generation call.
	synthesisMaxTokens = 2048
	// synthesisBaseTemperature is the sampling temperature of the first
	// attempt; each retry adds synthesisTemperatureStep.
	synthesisBaseTemperature = 0.90
	synthesisTemperatureStep = 0.01
)

// Bot is the orchestration layer: it fans media files out to the remote
// model, aggregates the per-item results and synthesizes a single
// conversational reply. Every call is stateless apart from the shared model
// handle and the optional result cache.
type Bot struct {
	model     ai.Model
	processor *media.Processor
	logger    zerolog.Logger
	cache     *cache.Cache

	modelName     string
	timeout       time.Duration
	rateLimit     float64
	rateBurst     int
	maxConcurrent int
	cacheTTL      time.Duration

	attempts        int
	maxTokens       int32
	baseTemperature float32
	temperatureStep float32
	preamble        string
	system          string
}

type Option func(*Bot)

// WithModel injects a remote model handle, bypassing the default Gemini
// client. Useful for alternate backends (ai.OpenAI) and for tests.
func WithModel(m ai.Model) Option {
	return func(b *Bot) { b.model = m }
}

// WithModelName selects the Gemini model built by default. It has no effect
// when WithModel injects a backend.
func WithModelName(name string) Option {
	return func(b *Bot) { b.modelName = name }
}

// WithLogger sets the logger shared by the pipeline components.
func WithLogger(logger zerolog.Logger) Option {
	return func(b *Bot) { b.logger = logger }
}

// WithTimeout sets the per-remote-call timeout for the default Gemini
// client. It has no effect when WithModel injects a backend.
func WithTimeout(d time.Duration) Option {
	return func(b *Bot) { b.timeout = d }
}

// WithRateLimit caps requests per second towards the default Gemini
// client. It has no effect when WithModel injects a backend.
func WithRateLimit(rps float64, burst int) Option {
	return func(b *Bot) {
		b.rateLimit = rps
		b.rateBurst = burst
	}
}

// WithMaxConcurrent bounds the media fan-out. Zero or negative keeps the
// default unbounded dispatch.
func WithMaxConcurrent(n int) Option {
	return func(b *Bot) { b.maxConcurrent = n }
}

// WithCache enables reuse of results for unchanged media files.
func WithCache(capacity int, ttl time.Duration) Option {
	return func(b *Bot) {
		b.cache = cache.NewCache(capacity)
		b.cacheTTL = ttl
	}
}

// WithPrompts overrides the synthesis preamble and system persona.
func WithPrompts(preamble, system string) Option {
	return func(b *Bot) {
		b.preamble = preamble
		b.system = system
	}
}

// New creates a Bot. The API credential is required and its absence is the
// only fatal construction error.
func New(ctx context.Context, apiKey string, opts ...Option) (*Bot, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("bot: API key is required")
	}

	b := &Bot{
		logger:          zerolog.Nop(),
		modelName:       ai.DefaultGeminiModel,
		timeout:         2 * time.Minute,
		attempts:        synthesisAttempts,
		maxTokens:       synthesisMaxTokens,
		baseTemperature: synthesisBaseTemperature,
		temperatureStep: synthesisTemperatureStep,
		preamble:        defaultPreamble,
		system:          defaultSystemInstruction,
	}
	for _, opt := range opts {
		opt(b)
	}

	if b.model == nil {
		gopts := []ai.GeminiOption{
			ai.WithGeminiLogger(b.logger),
			ai.WithGeminiTimeout(b.timeout),
		}
		if b.rateLimit > 0 {
			gopts = append(gopts, ai.WithGeminiRateLimit(b.rateLimit, b.rateBurst))
		}
		m, err := ai.NewGemini(ctx, apiKey, b.modelName, gopts...)
		if err != nil {
			return nil, err
		}
		b.model = m
	}

	popts := []media.ProcessorOption{media.WithLogger(b.logger)}
	if b.cache != nil {
		popts = append(popts, media.WithCache(b.cache, b.cacheTTL))
	}
	b.processor = media.NewProcessor(b.model, popts...)

	return b, nil
}

// Close releases the cache and the model client when it supports closing.
func (b *Bot) Close() error {
	if b.cache != nil {
		b.cache.Stop()
	}
	if closer, ok := b.model.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
