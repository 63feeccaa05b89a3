package types

// MediaKind identifies the kind of a media attachment
type MediaKind string

const (
	// KindImage is a photo attachment
	KindImage MediaKind = "image"
	// KindAudio is a voice note or audio file
	KindAudio MediaKind = "audio"
	// KindVideo is a video attachment
	KindVideo MediaKind = "video"
	// KindSticker is a sticker, processed as a still image
	KindSticker MediaKind = "sticker"
	// KindDocument is a document attachment, assumed PDF
	KindDocument MediaKind = "document"
)

// Kinds lists every media kind in a stable order.
var Kinds = []MediaKind{KindImage, KindAudio, KindVideo, KindSticker, KindDocument}

// ProcessingResult is the uniform outcome of processing one media item.
// Exactly one of Content or Error is ever set.
type ProcessingResult struct {
	Content string `json:"content,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Failed reports whether the result carries an error instead of content.
func (r ProcessingResult) Failed() bool {
	return r.Error != ""
}

// Success builds a success-shaped result.
func Success(content string) ProcessingResult {
	return ProcessingResult{Content: content}
}

// Failure builds a failure-shaped result.
func Failure(msg string) ProcessingResult {
	return ProcessingResult{Error: msg}
}

// MessageOptions is the inbound contract of ProcessMessage. All collections
// are optional and keep their input order.
type MessageOptions struct {
	Texts         []string `json:"texts,omitempty"`
	Images        []string `json:"images,omitempty"`
	Audios        []string `json:"audios,omitempty"`
	Videos        []string `json:"videos,omitempty"`
	Stickers      []string `json:"stickers,omitempty"`
	Documents     []string `json:"documents,omitempty"`
	ContextPrompt string   `json:"contextPrompt,omitempty"`
}

// Paths returns the media path collection for a kind.
func (o MessageOptions) Paths(kind MediaKind) []string {
	switch kind {
	case KindImage:
		return o.Images
	case KindAudio:
		return o.Audios
	case KindVideo:
		return o.Videos
	case KindSticker:
		return o.Stickers
	case KindDocument:
		return o.Documents
	}
	return nil
}

// AggregatedStatus groups every ProcessingResult by kind, in input order,
// together with the untouched text messages. Built once per ProcessMessage
// call and never mutated afterwards.
type AggregatedStatus struct {
	Media map[MediaKind][]ProcessingResult
	Texts []string
}

// NewAggregatedStatus returns an empty status ready to hold results.
func NewAggregatedStatus() AggregatedStatus {
	return AggregatedStatus{Media: make(map[MediaKind][]ProcessingResult)}
}

const (
	// StatusSuccess marks a FinalResponse carrying a generated reply
	StatusSuccess = "success"
	// StatusError marks a FinalResponse carrying a failure
	StatusError = "error"
)

// FinalResponse is the terminal artifact of the pipeline. Status is either
// StatusSuccess or StatusError; on error Message carries the human-readable
// reason and Error the underlying cause when one exists.
type FinalResponse struct {
	Status    string     `json:"status"`
	Response  string     `json:"response,omitempty"`
	Results   *ResultSet `json:"results,omitempty"`
	Message   string     `json:"message,omitempty"`
	Processed bool       `json:"processed,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// ResultSet wraps the final text result.
type ResultSet struct {
	Text ProcessingResult `json:"text"`
}

// SuccessResponse builds the success-shaped FinalResponse.
func SuccessResponse(text string) FinalResponse {
	return FinalResponse{
		Status:   StatusSuccess,
		Response: text,
		Results:  &ResultSet{Text: Success(text)},
	}
}

// ErrorResponse builds the error-shaped FinalResponse.
func ErrorResponse(message, cause string) FinalResponse {
	return FinalResponse{
		Status:    StatusError,
		Message:   message,
		Processed: true,
		Error:     cause,
	}
}
