package lexicon

import (
	"strings"
	"unicode/utf8"

	"github.com/antzucaro/matchr"
	"github.com/pmezard/go-difflib/difflib"
)

// Op classifies one segment of a phoneme comparison.
type Op string

const (
	OpMatch   Op = "match"
	OpReplace Op = "replace"
	OpDelete  Op = "delete"
	OpInsert  Op = "insert"
)

// Segment is one aligned span of a comparison. Expected is empty for
// inserts and Actual is empty for deletes.
type Segment struct {
	Op       Op     `json:"op"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

// Trace is the ordered alignment of an expected and a recognized phoneme
// string. Concatenating every Expected (Actual) reproduces the normalized
// expected (recognized) input.
type Trace []Segment

// Expected returns the concatenation of all expected parts.
func (tr Trace) Expected() string {
	var b strings.Builder
	for _, s := range tr {
		b.WriteString(s.Expected)
	}
	return b.String()
}

// Actual returns the concatenation of all recognized parts.
func (tr Trace) Actual() string {
	var b strings.Builder
	for _, s := range tr {
		b.WriteString(s.Actual)
	}
	return b.String()
}

// Count returns the number of segments with the given op.
func (tr Trace) Count(op Op) int {
	n := 0
	for _, s := range tr {
		if s.Op == op {
			n++
		}
	}
	return n
}

// ComparePhonemes scores how closely recognized matches expected, in [0, 100],
// and returns an alignment trace for feedback. Both inputs are lowercased
// and trimmed first. The score is 1 - levenshtein/maxLen over code points;
// the trace is informational and never affects the score.
func ComparePhonemes(expected, recognized string) (float64, Trace) {
	if expected == "" || recognized == "" {
		return 0, nil
	}

	expected = strings.ToLower(strings.TrimSpace(expected))
	recognized = strings.ToLower(strings.TrimSpace(recognized))

	if expected == recognized {
		return 100, Trace{{Op: OpMatch, Expected: expected, Actual: recognized}}
	}

	distance := matchr.Levenshtein(expected, recognized)
	maxLen := max(utf8.RuneCountInString(expected), utf8.RuneCountInString(recognized))
	similarity := (1 - float64(distance)/float64(maxLen)) * 100

	return similarity, alignRunes(expected, recognized)
}

// alignRunes diffs a and b code point by code point.
func alignRunes(a, b string) Trace {
	as, bs := splitRunes(a), splitRunes(b)
	m := difflib.NewMatcher(as, bs)

	var trace Trace
	for _, oc := range m.GetOpCodes() {
		exp := strings.Join(as[oc.I1:oc.I2], "")
		act := strings.Join(bs[oc.J1:oc.J2], "")
		switch oc.Tag {
		case 'e':
			trace = append(trace, Segment{Op: OpMatch, Expected: exp, Actual: act})
		case 'r':
			trace = append(trace, Segment{Op: OpReplace, Expected: exp, Actual: act})
		case 'd':
			trace = append(trace, Segment{Op: OpDelete, Expected: exp})
		case 'i':
			trace = append(trace, Segment{Op: OpInsert, Actual: act})
		}
	}
	return trace
}

// splitRunes returns each code point of s as its own string.
func splitRunes(s string) []string {
	out := make([]string, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// SequenceRatio returns difflib's similarity ratio 2*M/T of a and b,
// computed over code points.
func SequenceRatio(a, b string) float64 {
	return difflib.NewMatcher(splitRunes(a), splitRunes(b)).Ratio()
}
