package recognize

import (
	"github.com/ieee0824/pronounce-go/content"
	"github.com/ieee0824/pronounce-go/lexicon"
)

// RuleTransliterator derives phonemes from Indonesian orthography, which is
// close to phonemic: the normalized sentence is mapped letter by letter.
type RuleTransliterator struct{}

// TextToPhonemes implements Transliterator.
func (RuleTransliterator) TextToPhonemes(sentence string) string {
	return lexicon.Standardize(content.Normalize(sentence))
}
