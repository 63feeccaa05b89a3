package ai

import "context"

// Part is one element of a generation request: either plain text or an
// inline media payload carried as base64 data tagged with a MIME type.
type Part struct {
	Text     string
	MIMEType string
	Data     string
}

// TextPart builds a plain-text part.
func TextPart(text string) Part {
	return Part{Text: text}
}

// MediaPart builds an inline media part from base64-encoded data.
func MediaPart(mimeType, data string) Part {
	return Part{MIMEType: mimeType, Data: data}
}

// IsMedia reports whether the part carries an inline payload.
func (p Part) IsMedia() bool {
	return p.MIMEType != ""
}

// GenerateOptions configures a single generation call.
type GenerateOptions struct {
	MaxOutputTokens   int32
	Temperature       float32
	SystemInstruction string
}

// Model is the remote generative-model boundary: one logical operation that
// turns an ordered list of parts into text. The boundary is opaque and
// unreliable — it may return an error or empty text, and callers must defend
// against both.
type Model interface {
	GenerateContent(ctx context.Context, parts []Part, opts GenerateOptions) (string, error)
}
