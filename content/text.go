// Package content scores how much of a target sentence was actually said,
// working on recognized text rather than audio.
package content

import (
	"strings"

	"github.com/ieee0824/pronounce-go/lexicon"
)

// wordMatchThreshold is the largest 1-ratio distance at which two words count as the same.
const wordMatchThreshold = 0.2

const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Normalize lowercases text, removes ASCII punctuation and collapses runs of
// whitespace to single spaces.
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = strings.Map(func(r rune) rune {
		if r < 0x80 && strings.ContainsRune(asciiPunctuation, r) {
			return -1
		}
		return r
	}, text)
	return strings.Join(strings.Fields(text), " ")
}

// Words returns the normalized words of text.
func Words(text string) []string {
	return strings.Fields(Normalize(text))
}

// Compare scores recognized against expected in [0, 100]. An empty
// recognition scores 0, identical normalized texts score 100, otherwise the
// score blends 70% character-sequence similarity with 30% of the fraction of
// expected words that have a close match in the recognition.
func Compare(expected, recognized string) float64 {
	if recognized == "" {
		return 0
	}

	normExpected := Normalize(expected)
	normRecognized := Normalize(recognized)
	if normExpected == normRecognized {
		return 100
	}

	sequence := lexicon.SequenceRatio(normExpected, normRecognized) * 100
	word := WordScore(strings.Fields(normExpected), strings.Fields(normRecognized))
	return sequence*0.7 + word*0.3
}

// WordScore returns the percentage of expected words whose closest
// recognized word is within the match threshold. It is 0 when expected is empty.
func WordScore(expected, recognized []string) float64 {
	if len(expected) == 0 {
		return 0
	}
	matched := 0
	for _, ew := range expected {
		if _, ok := closestWord(ew, recognized); ok {
			matched++
		}
	}
	return float64(matched) / float64(len(expected)) * 100
}

// closestWord returns the recognized word with the smallest 1-ratio distance
// to w (first minimum wins) and whether it is close enough to count.
func closestWord(w string, candidates []string) (string, bool) {
	best := ""
	bestDist := 2.0
	for _, c := range candidates {
		if d := 1 - lexicon.SequenceRatio(w, c); d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best, best != "" && bestDist < wordMatchThreshold
}

// MissingWords returns the normalized expected words that do not appear
// verbatim among the recognized words, in order.
func MissingWords(expected, recognized string) []string {
	said := make(map[string]struct{})
	for _, w := range Words(recognized) {
		said[w] = struct{}{}
	}
	var missing []string
	for _, w := range Words(expected) {
		if _, ok := said[w]; !ok {
			missing = append(missing, w)
		}
	}
	return missing
}
