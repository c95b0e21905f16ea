package audio

import (
	"errors"
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ErrEmpty is returned when a file decodes to zero samples.
var ErrEmpty = errors.New("audio: no samples")

// Header holds the format of a decoded WAV file.
type Header struct {
	SampleRate    int
	BitsPerSample int
	NumChannels   int
	NumSamples    int // samples per channel
}

// ReadWAV decodes a PCM WAV stream and returns mono float64 samples in [-1.0, 1.0].
// Multi-channel input is downmixed by averaging; the sample rate is left unchanged.
func ReadWAV(r io.ReadSeeker) ([]float64, Header, error) {
	var header Header

	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, header, errors.New("not a valid WAV file")
	}
	if dec.WavAudioFormat != 1 {
		return nil, header, fmt.Errorf("unsupported audio format %d (only PCM=1 supported)", dec.WavAudioFormat)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, header, fmt.Errorf("read PCM data: %w", err)
	}

	header.SampleRate = int(dec.SampleRate)
	header.BitsPerSample = int(dec.BitDepth)
	header.NumChannels = int(dec.NumChans)
	if header.NumChannels < 1 {
		return nil, header, fmt.Errorf("invalid channel count %d", header.NumChannels)
	}

	samples := downmix(buf.Data, header.NumChannels, header.BitsPerSample)
	header.NumSamples = len(samples)
	if len(samples) == 0 {
		return nil, header, ErrEmpty
	}
	return samples, header, nil
}

// ReadWAVFile is a convenience wrapper that opens a file path.
func ReadWAVFile(path string) ([]float64, Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Header{}, err
	}
	defer f.Close()
	return ReadWAV(f)
}

// downmix converts interleaved integer PCM to mono float64.
// 8-bit WAV data is unsigned and is re-centred around zero.
func downmix(data []int, channels, bits int) []float64 {
	scale := float64(int64(1) << (bits - 1))
	offset := 0.0
	if bits == 8 {
		offset = 128
	}
	n := len(data) / channels
	out := make([]float64, n)
	inv := 1.0 / float64(channels)
	for i := 0; i < n; i++ {
		sum := 0.0
		for ch := 0; ch < channels; ch++ {
			sum += (float64(data[i*channels+ch]) - offset) / scale
		}
		out[i] = sum * inv
	}
	return out
}

// WriteWAV encodes mono samples as 16-bit PCM. Samples outside [-1, 1] are clipped.
func WriteWAV(w io.WriteSeeker, samples []float64, sampleRate int) error {
	data := make([]int, len(samples))
	for i, s := range samples {
		v := s * 32768.0
		if v > 32767 {
			v = 32767
		} else if v < -32768 {
			v = -32768
		}
		data[i] = int(v)
	}

	enc := wav.NewEncoder(w, sampleRate, 16, 1, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encode PCM data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize WAV: %w", err)
	}
	return nil
}

// WriteWAVFile creates path and writes samples to it as 16-bit mono PCM.
func WriteWAVFile(path string, samples []float64, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteWAV(f, samples, sampleRate); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
