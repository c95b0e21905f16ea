// Package feedback turns scores and phoneme traces into learner-facing advice.
package feedback

import (
	"strings"

	"github.com/ieee0824/pronounce-go/lexicon"
)

// Challenge is a sound learners commonly get wrong, with advice on it.
type Challenge struct {
	Sound       string `json:"sound"`
	Description string `json:"description"`
}

// Challenges lists the known difficult Indonesian sounds in lookup order.
var Challenges = []Challenge{
	{"r", "The Indonesian 'r' is slightly rolled or trilled, similar to Spanish 'r'"},
	{"c", "The Indonesian 'c' is pronounced like 'ch' in 'chair', not like 'k' or 's'"},
	{"e", "Indonesian has two 'e' sounds: 'e' as in 'bet' and 'e' as a schwa (ə) like in 'the'"},
	{"ng", "The 'ng' sound is pronounced as a single sound like in 'singer', not 'n'+'g'"},
	{"ny", "The 'ny' sound is pronounced as a single sound like 'ñ' in Spanish or 'gn' in Italian"},
	{"j", "The 'j' is pronounced like 'j' in 'jump', not like 'y' in 'yes'"},
	{"u", "The 'u' is pronounced like 'oo' in 'food', not like 'u' in 'but'"},
	{"ai", "The diphthong 'ai' is pronounced like 'eye', not as separate vowels"},
	{"au", "The diphthong 'au' is pronounced like 'ow' in 'how', not as separate vowels"},
}

const defaultDescription = "Focus on this sound"

// Describe returns the advice for sound, or a generic hint when it is not a known challenge.
func Describe(sound string) string {
	for _, c := range Challenges {
		if c.Sound == sound {
			return c.Description
		}
	}
	return defaultDescription
}

// IdentifyChallenges returns the known challenges a trace exposes. A
// challenge is reported when a non-matching segment's expected part
// contains it and the segment either deletes it or replaces it with
// something that does not contain it. Results are de-duplicated in first-seen order.
func IdentifyChallenges(tr lexicon.Trace) []Challenge {
	var out []Challenge
	seen := make(map[string]bool)
	for _, seg := range tr {
		if seg.Op == lexicon.OpMatch {
			continue
		}
		for _, c := range Challenges {
			if !strings.Contains(seg.Expected, c.Sound) {
				continue
			}
			hit := seg.Op == lexicon.OpDelete ||
				(seg.Op == lexicon.OpReplace && !strings.Contains(seg.Actual, c.Sound))
			if hit && !seen[c.Sound] {
				seen[c.Sound] = true
				out = append(out, c)
			}
		}
	}
	return out
}
