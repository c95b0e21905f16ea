package recognize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ieee0824/pronounce-go/audio"
)

// RemoteEmissions is an EmissionModel served over HTTP. The recording is
// POSTed as a 16-bit WAV in the multipart field "file" and the server
// answers with {"logits": [[...], ...]}, one row per frame.
type RemoteEmissions struct {
	endpoint   string
	httpClient *http.Client
	tempDir    string
}

// NewRemoteEmissions creates a RemoteEmissions posting to endpoint.
func NewRemoteEmissions(endpoint string, timeout time.Duration) (*RemoteEmissions, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("emissions: endpoint must not be empty")
	}
	return &RemoteEmissions{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Logits implements EmissionModel.
func (m *RemoteEmissions) Logits(ctx context.Context, samples []float64, sampleRate int) ([][]float64, error) {
	wav, err := m.encode(samples, sampleRate)
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "audio.wav")
	if err != nil {
		return nil, fmt.Errorf("emissions: create form file: %w", err)
	}
	if _, err := fw.Write(wav); err != nil {
		return nil, fmt.Errorf("emissions: write wav data: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("emissions: close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("emissions: create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("emissions: http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("emissions: server returned HTTP %d", resp.StatusCode)
	}

	var result struct {
		Logits [][]float64 `json:"logits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("emissions: parse JSON response: %w", err)
	}
	if len(result.Logits) == 0 {
		return nil, fmt.Errorf("emissions: empty logits")
	}
	return result.Logits, nil
}

// encode writes samples to a temporary WAV file (the encoder needs to seek
// back to patch the header) and returns its bytes.
func (m *RemoteEmissions) encode(samples []float64, sampleRate int) ([]byte, error) {
	f, err := os.CreateTemp(m.tempDir, "pronounce-emit-*.wav")
	if err != nil {
		return nil, fmt.Errorf("emissions: %w", err)
	}
	defer os.Remove(f.Name())
	defer f.Close()

	if err := audio.WriteWAV(f, samples, sampleRate); err != nil {
		return nil, fmt.Errorf("emissions: encode wav: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("emissions: %w", err)
	}
	return io.ReadAll(f)
}
