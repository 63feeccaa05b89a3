package bot

// Fixed prompt strings. They are defaults, not contracts: callers can swap
// the preamble and persona through WithPrompts.
const (
	defaultPreamble = "Recibiste un mensaje que puede incluir texto y archivos multimedia ya analizados. " +
		"A continuación está el contexto de la conversación, los mensajes del usuario y lo extraído de cada archivo. " +
		"Responde a todo en un solo mensaje natural y coherente, como si hubieras visto los archivos tú mismo."

	defaultSystemInstruction = "Eres un asistente conversacional cercano y servicial. " +
		"Responde en el idioma del usuario, de forma breve y natural, como en un chat. " +
		"No menciones procesos internos ni que recibiste descripciones o transcripciones de archivos."

	headerContext = "Contexto de la conversación:"
	headerTexts   = "Mensajes del usuario:"

	msgExhausted       = "No se pudo generar una respuesta después de varios intentos"
	msgSynthesisFailed = "Error al generar la respuesta final"
)
