package types

import "testing"

func TestProcessingResultShapes(t *testing.T) {
	ok := Success("una descripción")
	if ok.Failed() || ok.Content != "una descripción" || ok.Error != "" {
		t.Errorf("success result has the wrong shape: %+v", ok)
	}

	bad := Failure("Error al procesar el audio")
	if !bad.Failed() || bad.Content != "" || bad.Error == "" {
		t.Errorf("failure result has the wrong shape: %+v", bad)
	}
}

func TestMessageOptionsPaths(t *testing.T) {
	opts := MessageOptions{
		Images:    []string{"a.jpg"},
		Audios:    []string{"b.mp3", "c.mp3"},
		Videos:    []string{"d.mp4"},
		Stickers:  []string{"e.webp"},
		Documents: []string{"f.pdf"},
	}

	tests := []struct {
		kind MediaKind
		want int
	}{
		{KindImage, 1},
		{KindAudio, 2},
		{KindVideo, 1},
		{KindSticker, 1},
		{KindDocument, 1},
	}
	for _, tc := range tests {
		if got := len(opts.Paths(tc.kind)); got != tc.want {
			t.Errorf("%s: expected %d paths, got %d", tc.kind, tc.want, got)
		}
	}
	if opts.Paths(MediaKind("bogus")) != nil {
		t.Error("unknown kinds must yield no paths")
	}
}

func TestFinalResponseConstructors(t *testing.T) {
	ok := SuccessResponse("hola")
	if ok.Status != StatusSuccess || ok.Response != "hola" {
		t.Errorf("unexpected success response: %+v", ok)
	}
	if ok.Results == nil || ok.Results.Text.Content != "hola" {
		t.Errorf("results.text must echo the response: %+v", ok.Results)
	}

	bad := ErrorResponse("falló", "timeout")
	if bad.Status != StatusError || bad.Message != "falló" || bad.Error != "timeout" {
		t.Errorf("unexpected error response: %+v", bad)
	}
	if !bad.Processed {
		t.Error("error responses carry processed=true")
	}
}
