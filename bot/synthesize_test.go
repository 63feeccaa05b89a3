package bot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gemini-media-bot/ai"
	"gemini-media-bot/types"
)

// scriptedModel returns one scripted reply per call, repeating the last entry
// once the script runs out.
type scriptedModel struct {
	replies []string
	err     error
	calls   []ai.GenerateOptions
	prompts []string
}

func (m *scriptedModel) GenerateContent(_ context.Context, parts []ai.Part, opts ai.GenerateOptions) (string, error) {
	m.calls = append(m.calls, opts)
	if len(parts) > 0 {
		m.prompts = append(m.prompts, parts[0].Text)
	}
	if m.err != nil {
		return "", m.err
	}
	i := len(m.calls) - 1
	if i >= len(m.replies) {
		i = len(m.replies) - 1
	}
	return m.replies[i], nil
}

func newTestBot(t *testing.T, model ai.Model) *Bot {
	t.Helper()
	b, err := New(context.Background(), "test-key", WithModel(model))
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestGenerateFinalResponseRetriesOnEmpty(t *testing.T) {
	model := &scriptedModel{replies: []string{"", "", "", "", "quinto intento"}}
	b := newTestBot(t, model)

	res := b.generateFinalResponse(context.Background(), types.NewAggregatedStatus(), "")

	if res.Status != types.StatusSuccess {
		t.Fatalf("expected success, got %+v", res)
	}
	if res.Response != "quinto intento" {
		t.Errorf("expected the fifth reply, got %q", res.Response)
	}
	if len(model.calls) != 5 {
		t.Errorf("expected 5 attempts, got %d", len(model.calls))
	}
	if res.Results == nil || res.Results.Text.Content != "quinto intento" {
		t.Errorf("expected results.text to echo the response, got %+v", res.Results)
	}
}

func TestGenerateFinalResponseExhaustsRetries(t *testing.T) {
	model := &scriptedModel{replies: []string{""}}
	b := newTestBot(t, model)

	res := b.generateFinalResponse(context.Background(), types.NewAggregatedStatus(), "")

	if res.Status != types.StatusError {
		t.Fatalf("expected error status, got %+v", res)
	}
	if res.Message != "No se pudo generar una respuesta después de varios intentos" {
		t.Errorf("unexpected exhaustion message: %q", res.Message)
	}
	if len(model.calls) != 5 {
		t.Errorf("expected exactly 5 attempts, got %d", len(model.calls))
	}
	if !res.Processed {
		t.Error("expected processed=true on the error result")
	}
}

func TestGenerateFinalResponseTemperatureRamp(t *testing.T) {
	model := &scriptedModel{replies: []string{""}}
	b := newTestBot(t, model)

	b.generateFinalResponse(context.Background(), types.NewAggregatedStatus(), "")

	want := []float32{0.90, 0.91, 0.92, 0.93, 0.94}
	for i, opts := range model.calls {
		if diff := opts.Temperature - want[i]; diff > 0.0001 || diff < -0.0001 {
			t.Errorf("attempt %d: expected temperature %v, got %v", i+1, want[i], opts.Temperature)
		}
		if opts.MaxOutputTokens != 2048 {
			t.Errorf("attempt %d: expected token cap 2048, got %d", i+1, opts.MaxOutputTokens)
		}
		if opts.SystemInstruction == "" {
			t.Errorf("attempt %d: expected the system persona to be set", i+1)
		}
	}
}

func TestGenerateFinalResponseAbortsOnModelError(t *testing.T) {
	model := &scriptedModel{err: errors.New("api quota exceeded")}
	b := newTestBot(t, model)

	res := b.generateFinalResponse(context.Background(), types.NewAggregatedStatus(), "")

	if res.Status != types.StatusError {
		t.Fatalf("expected error status, got %+v", res)
	}
	if !strings.Contains(res.Error, "api quota exceeded") {
		t.Errorf("expected the underlying error to be preserved, got %q", res.Error)
	}
	if len(model.calls) != 1 {
		t.Errorf("a raised error must not be retried, got %d attempts", len(model.calls))
	}
}

func TestComposePrompt(t *testing.T) {
	status := types.NewAggregatedStatus()
	status.Texts = []string{"hola", "¿viste la foto?"}
	status.Media[types.KindImage] = []types.ProcessingResult{
		types.Success("un gato en la ventana"),
		types.Failure("Error al procesar la imagen"),
	}
	status.Media[types.KindAudio] = []types.ProcessingResult{
		types.Success("dice: nos vemos mañana"),
	}
	status.Media[types.KindDocument] = []types.ProcessingResult{
		types.Success("contrato de alquiler"),
	}

	prompt := composePrompt(defaultPreamble, status, "historial previo")

	if !strings.HasPrefix(prompt, defaultPreamble) {
		t.Error("prompt must start with the preamble")
	}
	for _, want := range []string{
		"Contexto de la conversación:\nhistorial previo",
		"Mensajes del usuario:",
		"1. hola",
		"2. ¿viste la foto?",
		"Imagen 1 descripción: un gato en la ventana",
		"Audio 1 transcripción: dice: nos vemos mañana",
		"Documento 1 resumen: contrato de alquiler",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt is missing %q\nprompt:\n%s", want, prompt)
		}
	}

	// The failed image contributes no block at all.
	if strings.Contains(prompt, "Imagen 2") {
		t.Error("failure-shaped results must be omitted from the prompt")
	}
	if strings.Contains(prompt, "Error al procesar") {
		t.Error("failure messages must never reach the prompt")
	}
}

func TestComposePromptEmptyInput(t *testing.T) {
	prompt := composePrompt(defaultPreamble, types.NewAggregatedStatus(), "")
	if prompt != defaultPreamble {
		t.Errorf("empty input must produce only the preamble, got:\n%s", prompt)
	}
}

func TestComposePromptContextOnly(t *testing.T) {
	prompt := composePrompt(defaultPreamble, types.NewAggregatedStatus(), "charla de ayer")
	if !strings.Contains(prompt, "charla de ayer") {
		t.Error("expected the context block to be present")
	}
	if strings.Contains(prompt, headerTexts) {
		t.Error("text header must be omitted when there are no text messages")
	}
}

func TestComposePromptIndexesPerKind(t *testing.T) {
	status := types.NewAggregatedStatus()
	status.Media[types.KindImage] = []types.ProcessingResult{
		types.Success("primera"),
		types.Success("segunda"),
	}

	prompt := composePrompt(defaultPreamble, status, "")

	first := strings.Index(prompt, "Imagen 1 descripción: primera")
	second := strings.Index(prompt, "Imagen 2 descripción: segunda")
	if first < 0 || second < 0 || second < first {
		t.Errorf("expected 1-indexed blocks in input order, got:\n%s", prompt)
	}
}
