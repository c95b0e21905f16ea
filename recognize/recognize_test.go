package recognize

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ieee0824/pronounce-go/audio"
	"github.com/sirupsen/logrus"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func writeTone(t *testing.T, n int) string {
	t.Helper()
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/16000)
	}
	path := filepath.Join(t.TempDir(), "tone.wav")
	if err := audio.WriteWAVFile(path, samples, 16000); err != nil {
		t.Fatalf("WriteWAVFile: %v", err)
	}
	return path
}

func TestFallback(t *testing.T) {
	failing := Func(func(ctx context.Context, path, lang string) (string, error) {
		return "", errors.New("boom")
	})
	empty := Func(func(ctx context.Context, path, lang string) (string, error) {
		return "  ", nil
	})
	ok := Func(func(ctx context.Context, path, lang string) (string, error) {
		return "selamat pagi", nil
	})

	tests := []struct {
		name    string
		chain   []Recognizer
		want    string
		wantErr bool
	}{
		{"first wins", []Recognizer{ok, failing}, "selamat pagi", false},
		{"skip failure", []Recognizer{failing, ok}, "selamat pagi", false},
		{"skip empty", []Recognizer{empty, ok}, "selamat pagi", false},
		{"all fail", []Recognizer{failing, empty}, "", true},
		{"no recognizers", nil, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &Fallback{Recognizers: tt.chain, Logger: quietLogger()}
			got, err := f.Recognize(context.Background(), "x.wav", "id")
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrNoTranscript) {
				t.Errorf("err = %v, want ErrNoTranscript", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWhisper_Recognize(t *testing.T) {
	var gotLang, gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/audio/transcriptions") {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotLang = r.FormValue("language")
		gotModel = r.FormValue("model")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"text": " Selamat Pagi "})
	}))
	defer srv.Close()

	w, err := NewWhisper("test-key", WithBaseURL(srv.URL+"/v1/"), WithMaxRetries(0))
	if err != nil {
		t.Fatalf("NewWhisper: %v", err)
	}
	text, err := w.Recognize(context.Background(), writeTone(t, 1600), "id")
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	if text != "selamat pagi" {
		t.Errorf("text = %q, want lowercased trimmed transcript", text)
	}
	if gotLang != "id" || gotModel != DefaultWhisperModel {
		t.Errorf("language=%q model=%q", gotLang, gotModel)
	}
}

func TestWhisper_Errors(t *testing.T) {
	if _, err := NewWhisper(""); err == nil {
		t.Error("expected error for empty key")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"nope"}}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	w, err := NewWhisper("k", WithBaseURL(srv.URL+"/v1/"), WithMaxRetries(0))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Recognize(context.Background(), writeTone(t, 160), "id"); err == nil {
		t.Error("expected error from server failure")
	}
	if _, err := w.Recognize(context.Background(), filepath.Join(t.TempDir(), "missing.wav"), "id"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRuleTransliterator(t *testing.T) {
	got := RuleTransliterator{}.TextToPhonemes("Nyanyi, sayang!")
	want := "ɲaɲi sajaŋ"
	if got != want {
		t.Errorf("TextToPhonemes = %q, want %q", got, want)
	}
}
