package media

import (
	"encoding/base64"
	"fmt"
	"os"

	"gemini-media-bot/ai"
)

// Encode reads the whole file at path and returns it as an inline part:
// base64 payload tagged with mimeType. Read failures propagate to the caller,
// which is responsible for turning them into a structured result.
func Encode(path, mimeType string) (ai.Part, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ai.Part{}, fmt.Errorf("read %s: %w", path, err)
	}
	return ai.MediaPart(mimeType, base64.StdEncoding.EncodeToString(data)), nil
}
