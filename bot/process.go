package bot

import (
	"context"

	"gemini-media-bot/types"
)

// unit is one independent piece of media work: a path, its kind and its
// position within that kind's input collection.
type unit struct {
	kind  types.MediaKind
	path  string
	index int
}

// ProcessMessage runs the whole pipeline: every media path is dispatched
// concurrently, the batch is awaited in full, results are grouped by kind in
// input order, and the aggregate is handed to the synthesis step. A failed
// item contributes a failure-shaped result but never aborts the batch.
// Errors never escape; the outcome is always a FinalResponse whose Status
// must be inspected.
func (b *Bot) ProcessMessage(ctx context.Context, opts types.MessageOptions) types.FinalResponse {
	status := types.NewAggregatedStatus()
	status.Texts = append([]string(nil), opts.Texts...)

	var units []unit
	for _, kind := range types.Kinds {
		paths := opts.Paths(kind)
		if len(paths) == 0 {
			continue
		}
		// One pre-sized slot per input so each result lands at its
		// input position no matter when it completes.
		status.Media[kind] = make([]types.ProcessingResult, len(paths))
		for i, path := range paths {
			units = append(units, unit{kind: kind, path: path, index: i})
		}
	}

	b.logger.Debug().
		Int("media_units", len(units)).
		Int("texts", len(status.Texts)).
		Msg("processing message")

	pool := newWorkerPool(b.maxConcurrent)
	for _, u := range units {
		u := u
		pool.Submit(func() {
			status.Media[u.kind][u.index] = b.processor.Process(ctx, u.kind, u.path)
		})
	}
	pool.Wait()

	return b.generateFinalResponse(ctx, status, opts.ContextPrompt)
}
