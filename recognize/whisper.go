package recognize

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultWhisperModel is the transcription model used when none is configured.
const DefaultWhisperModel = "whisper-1"

// Whisper recognizes speech through an OpenAI-compatible transcription API.
type Whisper struct {
	client oai.Client
	model  string
}

type whisperConfig struct {
	baseURL    string
	model      string
	timeout    time.Duration
	maxRetries int
}

// WhisperOption configures a Whisper recognizer.
type WhisperOption func(*whisperConfig)

// WithBaseURL overrides the API base URL, e.g. for a self-hosted server.
func WithBaseURL(url string) WhisperOption {
	return func(c *whisperConfig) {
		c.baseURL = url
	}
}

// WithModel overrides the transcription model.
func WithModel(model string) WhisperOption {
	return func(c *whisperConfig) {
		c.model = model
	}
}

// WithTimeout sets a per-request HTTP timeout.
func WithTimeout(d time.Duration) WhisperOption {
	return func(c *whisperConfig) {
		c.timeout = d
	}
}

// WithMaxRetries sets how often a failed request is retried.
func WithMaxRetries(n int) WhisperOption {
	return func(c *whisperConfig) {
		c.maxRetries = n
	}
}

// NewWhisper creates a Whisper recognizer.
func NewWhisper(apiKey string, opts ...WhisperOption) (*Whisper, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("whisper: apiKey must not be empty")
	}
	cfg := &whisperConfig{model: DefaultWhisperModel, maxRetries: -1}
	for _, o := range opts {
		o(cfg)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if cfg.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.baseURL))
	}
	if cfg.timeout > 0 {
		reqOpts = append(reqOpts, option.WithHTTPClient(&http.Client{
			Timeout: cfg.timeout,
		}))
	}
	if cfg.maxRetries >= 0 {
		reqOpts = append(reqOpts, option.WithMaxRetries(cfg.maxRetries))
	}

	return &Whisper{client: oai.NewClient(reqOpts...), model: cfg.model}, nil
}

// Recognize implements Recognizer. The transcript is lowercased.
func (w *Whisper) Recognize(ctx context.Context, path, lang string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("whisper: %w", err)
	}
	defer f.Close()

	params := oai.AudioTranscriptionNewParams{
		File:  f,
		Model: oai.AudioModel(w.model),
	}
	if lang != "" {
		params.Language = oai.String(lang)
	}
	resp, err := w.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("whisper: transcribe: %w", err)
	}
	return strings.ToLower(strings.TrimSpace(resp.Text)), nil
}
