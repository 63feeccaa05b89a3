package bot

import (
	"context"
	"fmt"
	"strings"

	"gemini-media-bot/ai"
	"gemini-media-bot/media"
	"gemini-media-bot/metrics"
	"gemini-media-bot/types"
)

// generateFinalResponse composes one prompt from everything gathered and asks
// the model for the conversational reply. Blank replies are retried up to
// b.attempts times with a slightly higher temperature each time; a model
// error aborts immediately and its message is preserved in the result.
func (b *Bot) generateFinalResponse(ctx context.Context, status types.AggregatedStatus, contextPrompt string) types.FinalResponse {
	prompt := composePrompt(b.preamble, status, contextPrompt)

	for attempt := 0; attempt < b.attempts; attempt++ {
		metrics.SynthesisAttempt()
		temperature := b.baseTemperature + float32(attempt)*b.temperatureStep

		text, err := b.model.GenerateContent(ctx, []ai.Part{ai.TextPart(prompt)}, ai.GenerateOptions{
			MaxOutputTokens:   b.maxTokens,
			Temperature:       temperature,
			SystemInstruction: b.system,
		})
		if err != nil {
			b.logger.Error().Err(err).Int("attempt", attempt+1).Msg("final response generation failed")
			metrics.SynthesisResult(types.StatusError)
			return types.ErrorResponse(msgSynthesisFailed, err.Error())
		}
		if strings.TrimSpace(text) != "" {
			metrics.SynthesisResult(types.StatusSuccess)
			return types.SuccessResponse(text)
		}

		b.logger.Warn().
			Int("attempt", attempt+1).
			Float32("temperature", temperature).
			Msg("model returned empty text, retrying")
	}

	metrics.SynthesisResult(types.StatusError)
	return types.ErrorResponse(msgExhausted, "")
}

// composePrompt concatenates, in order: the fixed preamble, the conversation
// context when present, the user's text messages as a 1-indexed list, and one
// labeled block per media result. Failure-shaped and empty results contribute
// no block.
func composePrompt(preamble string, status types.AggregatedStatus, contextPrompt string) string {
	var sb strings.Builder
	sb.WriteString(preamble)

	if contextPrompt != "" {
		sb.WriteString("\n\n")
		sb.WriteString(headerContext)
		sb.WriteString("\n")
		sb.WriteString(contextPrompt)
	}

	if len(status.Texts) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(headerTexts)
		for i, t := range status.Texts {
			fmt.Fprintf(&sb, "\n%d. %s", i+1, t)
		}
	}

	for _, kind := range types.Kinds {
		for i, r := range status.Media[kind] {
			if r.Content == "" {
				continue
			}
			fmt.Fprintf(&sb, "\n%s %d %s: %s", media.DisplayName(kind), i+1, media.Label(kind), r.Content)
		}
	}

	return sb.String()
}
