package recognize

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ieee0824/pronounce-go/audio"
	"github.com/ieee0824/pronounce-go/lexicon"
	"github.com/sirupsen/logrus"
)

// EmissionModel is a CTC acoustic model: it maps audio to per-frame logits
// over a token vocabulary.
type EmissionModel interface {
	Logits(ctx context.Context, samples []float64, sampleRate int) ([][]float64, error)
}

// Decoder turns per-frame argmax token ids into a symbol string.
type Decoder interface {
	Decode(ids []int) (string, error)
}

// VocabDecoder decodes ids through the model's own vocabulary, the way a
// CTC tokenizer does: repeats collapse, blanks vanish and the word delimiter
// becomes a space.
type VocabDecoder struct {
	Tokens        map[int]string
	Blank         int
	WordDelimiter string
}

// LoadVocab reads a token→id JSON vocabulary (the vocab.json layout of
// wav2vec2-style models). "<pad>" is the blank token and "|" the word
// delimiter.
func LoadVocab(r io.Reader) (*VocabDecoder, error) {
	var vocab map[string]int
	if err := json.NewDecoder(r).Decode(&vocab); err != nil {
		return nil, fmt.Errorf("decode vocab: %w", err)
	}
	blank, ok := vocab["<pad>"]
	if !ok {
		return nil, fmt.Errorf("vocab has no <pad> token")
	}
	d := &VocabDecoder{
		Tokens:        make(map[int]string, len(vocab)),
		Blank:         blank,
		WordDelimiter: "|",
	}
	for tok, id := range vocab {
		d.Tokens[id] = tok
	}
	return d, nil
}

// LoadVocabFile is LoadVocab on a file.
func LoadVocabFile(path string) (*VocabDecoder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadVocab(f)
}

// Decode implements Decoder.
func (d *VocabDecoder) Decode(ids []int) (string, error) {
	var b strings.Builder
	prev := -1
	for _, id := range ids {
		if id == prev {
			continue
		}
		prev = id
		if id == d.Blank {
			continue
		}
		tok, ok := d.Tokens[id]
		if !ok {
			return "", fmt.Errorf("token id %d not in vocabulary", id)
		}
		// 特殊トークン (<s>, </s>, <unk>) は捨てる
		if strings.HasPrefix(tok, "<") && strings.HasSuffix(tok, ">") {
			continue
		}
		if tok == d.WordDelimiter {
			tok = " "
		}
		b.WriteString(tok)
	}
	return strings.Join(strings.Fields(b.String()), " "), nil
}

// ipaLikeSymbols is the fixed alphabet raw token ids are folded onto when
// the model has no usable vocabulary.
const ipaLikeSymbols = "abcdefghijklmnopqrstuvwxyzəɪʊɛɔæɑʌɒɨʉɯɤøɵœɶɐɞʏɘɹɾɽɻɺɮɬɡɠɧɦɥɰʎʍɕʑʡʢǀǁǂǃɓɗɓǃǂɠʘ!ʼ,.?-:;()[]{}"

// DefaultMaxSymbols caps SymbolDecoder output.
const DefaultMaxSymbols = 30

// SymbolDecoder maps raw token ids onto a fixed symbol alphabet (id modulo
// alphabet size), collapsing repeats and keeping at most MaxSymbols symbols.
type SymbolDecoder struct {
	Alphabet   []rune
	MaxSymbols int
}

// NewSymbolDecoder returns a SymbolDecoder over the built-in IPA-like alphabet.
func NewSymbolDecoder() *SymbolDecoder {
	return &SymbolDecoder{Alphabet: []rune(ipaLikeSymbols), MaxSymbols: DefaultMaxSymbols}
}

// Decode implements Decoder.
func (d *SymbolDecoder) Decode(ids []int) (string, error) {
	if len(d.Alphabet) == 0 {
		return "", fmt.Errorf("symbol decoder has an empty alphabet")
	}
	out := make([]rune, 0, d.MaxSymbols)
	prev := -1
	for _, id := range ids {
		if id == prev {
			continue
		}
		prev = id
		if d.MaxSymbols > 0 && len(out) >= d.MaxSymbols {
			break
		}
		i := id % len(d.Alphabet)
		if i < 0 {
			i += len(d.Alphabet)
		}
		out = append(out, d.Alphabet[i])
	}
	return string(out), nil
}

// Argmax returns the index of the largest logit of every frame.
func Argmax(logits [][]float64) []int {
	ids := make([]int, len(logits))
	for t, frame := range logits {
		best := 0
		for k := 1; k < len(frame); k++ {
			if frame[k] > frame[best] {
				best = k
			}
		}
		ids[t] = best
	}
	return ids
}

// CTCExtractor implements PhonemeExtractor with an EmissionModel and a
// Decoder. When the decoder fails and a fallback decoder is set, the
// fallback is used instead.
type CTCExtractor struct {
	model      EmissionModel
	decoder    Decoder
	fallback   Decoder
	sampleRate int
	log        logrus.FieldLogger
}

// CTCOption configures a CTCExtractor.
type CTCOption func(*CTCExtractor)

// WithFallbackDecoder sets the decoder used when the primary decoder fails.
func WithFallbackDecoder(d Decoder) CTCOption {
	return func(e *CTCExtractor) {
		e.fallback = d
	}
}

// WithSampleRate sets the rate audio is resampled to before inference.
func WithSampleRate(rate int) CTCOption {
	return func(e *CTCExtractor) {
		e.sampleRate = rate
	}
}

// WithCTCLogger sets the logger.
func WithCTCLogger(log logrus.FieldLogger) CTCOption {
	return func(e *CTCExtractor) {
		e.log = log
	}
}

// NewCTCExtractor creates a CTCExtractor. A nil decoder means raw symbol decoding.
func NewCTCExtractor(model EmissionModel, decoder Decoder, opts ...CTCOption) *CTCExtractor {
	e := &CTCExtractor{
		model:      model,
		decoder:    decoder,
		sampleRate: 16000,
		log:        logrus.StandardLogger(),
	}
	if e.decoder == nil {
		e.decoder = NewSymbolDecoder()
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractPhonemes implements PhonemeExtractor.
func (e *CTCExtractor) ExtractPhonemes(ctx context.Context, path string) (string, error) {
	samples, err := audio.Load(path, e.sampleRate)
	if err != nil {
		return "", err
	}
	logits, err := e.model.Logits(ctx, samples, e.sampleRate)
	if err != nil {
		return "", fmt.Errorf("emissions: %w", err)
	}
	return e.decode(Argmax(logits))
}

func (e *CTCExtractor) decode(ids []int) (string, error) {
	text, err := e.decoder.Decode(ids)
	if err != nil {
		if e.fallback == nil {
			return "", fmt.Errorf("decode: %w", err)
		}
		e.log.WithError(err).Warn("decoder failed, using fallback decoder")
		if text, err = e.fallback.Decode(ids); err != nil {
			return "", fmt.Errorf("fallback decode: %w", err)
		}
	}
	return lexicon.Standardize(text), nil
}
