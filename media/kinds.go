package media

import "gemini-media-bot/types"

// kindSpec fixes everything that varies per media kind: the MIME type the
// payload is tagged with, the instruction sent alongside it, the generic
// message a failure collapses into, the sampling temperature, the label used
// for the item's block in the final prompt, and whether the media part goes
// before or after the instruction. The part order affects how the model
// frames the task, so it must stay stable per kind.
type kindSpec struct {
	mime        string
	instruction string
	errMessage  string
	temperature float32
	name        string
	label       string
	mediaFirst  bool
}

var kindSpecs = map[types.MediaKind]kindSpec{
	types.KindImage: {
		mime:        "image/jpeg",
		instruction: "Describe esta imagen con todo detalle: personas, objetos, texto visible, colores y ambiente.",
		errMessage:  "Error al procesar la imagen",
		temperature: 0.85,
		name:        "Imagen",
		label:       "descripción",
		mediaFirst:  true,
	},
	types.KindAudio: {
		mime:        "audio/mp3",
		instruction: "Transcribe cada palabra de este audio. Si hay varias voces, indícalo.",
		errMessage:  "Error al procesar el audio",
		temperature: 0.85,
		name:        "Audio",
		label:       "transcripción",
	},
	types.KindVideo: {
		mime:        "video/mp4",
		instruction: "Describe todo lo que ocurre en este video, en orden: escenas, personas, diálogos y sonidos.",
		errMessage:  "Error al procesar el video",
		temperature: 0.85,
		name:        "Video",
		label:       "descripción",
	},
	types.KindSticker: {
		mime:        "image/jpeg",
		instruction: "Describe este sticker y la emoción o intención que transmite.",
		errMessage:  "Error al procesar el sticker",
		temperature: 1.0,
		name:        "Sticker",
		label:       "descripción",
		mediaFirst:  true,
	},
	types.KindDocument: {
		mime:        "application/pdf",
		instruction: "Resume el contenido de este documento, incluyendo los puntos y datos más importantes.",
		errMessage:  "Error al procesar el documento",
		temperature: 0.45,
		name:        "Documento",
		label:       "resumen",
	},
}

// DisplayName returns the name used for a kind's blocks in the final prompt.
func DisplayName(kind types.MediaKind) string {
	return kindSpecs[kind].name
}

// Label returns the block label for a kind: "transcripción" for audio,
// "resumen" for documents, "descripción" otherwise.
func Label(kind types.MediaKind) string {
	return kindSpecs[kind].label
}

// MIMEType returns the fixed MIME type a kind's payload is tagged with.
func MIMEType(kind types.MediaKind) string {
	return kindSpecs[kind].mime
}

// ErrorMessage returns the fixed message a kind's failures collapse into.
func ErrorMessage(kind types.MediaKind) string {
	return kindSpecs[kind].errMessage
}
