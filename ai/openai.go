package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gemini-media-bot/utils"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// ErrUnsupportedMedia is returned when a part carries a payload the chat
// completions API cannot transport (anything that is not an image).
var ErrUnsupportedMedia = errors.New("ai: media type not supported by this model")

// OpenAI implements Model on the chat completions API. It carries text and
// image parts; audio, video and document payloads yield ErrUnsupportedMedia.
type OpenAI struct {
	client  *openai.Client
	model   string
	logger  zerolog.Logger
	limiter *rate.Limiter
	timeout time.Duration
	retry   *utils.RetryConfig
}

type OpenAIOption func(*OpenAI)

// WithOpenAILogger sets the logger for request tracing.
func WithOpenAILogger(logger zerolog.Logger) OpenAIOption {
	return func(o *OpenAI) { o.logger = logger }
}

// WithOpenAIRateLimit caps requests per second towards the API.
func WithOpenAIRateLimit(rps float64, burst int) OpenAIOption {
	return func(o *OpenAI) { o.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// WithOpenAITimeout sets the per-call timeout.
func WithOpenAITimeout(d time.Duration) OpenAIOption {
	return func(o *OpenAI) { o.timeout = d }
}

// NewOpenAI creates an OpenAI-backed model client. The API key is required.
func NewOpenAI(apiKey, model string, opts ...OpenAIOption) (*OpenAI, error) {
	if apiKey == "" {
		return nil, errors.New("openai: API key is required")
	}
	if model == "" {
		model = openai.GPT4oMini
	}

	o := &OpenAI{
		client:  openai.NewClient(apiKey),
		model:   model,
		logger:  zerolog.Nop(),
		limiter: rate.NewLimiter(rate.Inf, 0),
		timeout: 2 * time.Minute,
		retry:   utils.DefaultRetryConfig(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// GenerateContent sends the parts as a single user message and returns the
// completion text, which may be empty.
func (o *OpenAI) GenerateContent(ctx context.Context, parts []Part, opts GenerateOptions) (string, error) {
	if err := o.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("openai: rate limit: %w", err)
	}

	messages, err := buildChatMessages(parts, opts.SystemInstruction)
	if err != nil {
		return "", err
	}

	req := openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    messages,
		MaxTokens:   int(opts.MaxOutputTokens),
		Temperature: opts.Temperature,
	}

	var resp openai.ChatCompletionResponse
	err = utils.WithRetry(func() error {
		callCtx, cancel := context.WithTimeout(ctx, o.timeout)
		defer cancel()

		r, err := o.client.CreateChatCompletion(callCtx, req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			o.logger.Debug().Err(err).Str("model", o.model).Msg("openai request failed, retrying")
			return err
		}
		resp = r
		return nil
	}, o.retry)
	if err != nil {
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// buildChatMessages maps boundary parts onto chat messages. Image payloads
// travel as base64 data URLs inside a multi-part user message.
func buildChatMessages(parts []Part, system string) ([]openai.ChatCompletionMessage, error) {
	var content []openai.ChatMessagePart
	for _, p := range parts {
		if !p.IsMedia() {
			content = append(content, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeText,
				Text: p.Text,
			})
			continue
		}
		if !strings.HasPrefix(p.MIMEType, "image/") {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedMedia, p.MIMEType)
		}
		content = append(content, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL: "data:" + p.MIMEType + ";base64," + p.Data,
			},
		})
	}

	var messages []openai.ChatCompletionMessage
	if system != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:         openai.ChatMessageRoleUser,
		MultiContent: content,
	})
	return messages, nil
}
