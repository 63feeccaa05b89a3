package media

import (
	"context"
	"fmt"
	"os"
	"time"

	"gemini-media-bot/ai"
	"gemini-media-bot/cache"
	"gemini-media-bot/metrics"
	"gemini-media-bot/types"

	"github.com/rs/zerolog"
)

// maxOutputTokens caps every per-media model call.
const maxOutputTokens = 2048

// Processor turns media files into ProcessingResults. Any failure — read,
// encoding, remote error — collapses into the kind's fixed generic message;
// the underlying error is logged but never surfaced, so the aggregation layer
// stays insulated from low-level failure detail.
type Processor struct {
	model  ai.Model
	logger zerolog.Logger
	cache  *cache.Cache
	ttl    time.Duration
}

type ProcessorOption func(*Processor)

// WithLogger sets the logger used for discarded error detail.
func WithLogger(logger zerolog.Logger) ProcessorOption {
	return func(p *Processor) { p.logger = logger }
}

// WithCache reuses results for files that have not changed since they were
// last processed.
func WithCache(c *cache.Cache, ttl time.Duration) ProcessorOption {
	return func(p *Processor) {
		p.cache = c
		p.ttl = ttl
	}
}

// NewProcessor creates a processor bound to a model.
func NewProcessor(model ai.Model, opts ...ProcessorOption) *Processor {
	p := &Processor{
		model:  model,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessImage describes a photo.
func (p *Processor) ProcessImage(ctx context.Context, path string) types.ProcessingResult {
	return p.Process(ctx, types.KindImage, path)
}

// ProcessAudio transcribes an audio file.
func (p *Processor) ProcessAudio(ctx context.Context, path string) types.ProcessingResult {
	return p.Process(ctx, types.KindAudio, path)
}

// ProcessVideo describes a video.
func (p *Processor) ProcessVideo(ctx context.Context, path string) types.ProcessingResult {
	return p.Process(ctx, types.KindVideo, path)
}

// ProcessSticker describes a sticker.
func (p *Processor) ProcessSticker(ctx context.Context, path string) types.ProcessingResult {
	return p.Process(ctx, types.KindSticker, path)
}

// ProcessDocument summarizes a document.
func (p *Processor) ProcessDocument(ctx context.Context, path string) types.ProcessingResult {
	return p.Process(ctx, types.KindDocument, path)
}

// Process handles one media file of the given kind. It never returns an
// error: failures come back as the kind's failure-shaped result.
func (p *Processor) Process(ctx context.Context, kind types.MediaKind, path string) types.ProcessingResult {
	ks, ok := kindSpecs[kind]
	if !ok {
		return types.Failure("Tipo de archivo no soportado")
	}

	key := p.cacheKey(kind, path)
	if p.cache != nil && key != "" {
		if res, hit := p.cache.Get(key); hit {
			metrics.MediaProcessed(string(kind), "cached")
			return res
		}
	}

	part, err := Encode(path, ks.mime)
	if err != nil {
		p.logger.Debug().Err(err).Str("kind", string(kind)).Str("path", path).Msg("media encoding failed")
		metrics.MediaProcessed(string(kind), "error")
		return types.Failure(ks.errMessage)
	}

	parts := []ai.Part{ai.TextPart(ks.instruction), part}
	if ks.mediaFirst {
		parts = []ai.Part{part, ai.TextPart(ks.instruction)}
	}

	start := time.Now()
	text, err := p.model.GenerateContent(ctx, parts, ai.GenerateOptions{
		MaxOutputTokens: maxOutputTokens,
		Temperature:     ks.temperature,
	})
	metrics.ModelRequest(time.Since(start))
	if err != nil {
		p.logger.Debug().Err(err).Str("kind", string(kind)).Str("path", path).Msg("media processing failed")
		metrics.MediaProcessed(string(kind), "error")
		return types.Failure(ks.errMessage)
	}

	metrics.MediaProcessed(string(kind), "ok")
	res := types.Success(text)
	if p.cache != nil && key != "" {
		p.cache.Set(key, res, p.ttl)
	}
	return res
}

// cacheKey identifies a file by kind, path and current mtime/size, so edits
// invalidate the cached result.
func (p *Processor) cacheKey(kind types.MediaKind, path string) string {
	if p.cache == nil {
		return ""
	}
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s|%s|%d|%d", kind, path, info.ModTime().UnixNano(), info.Size())
}
