package lexicon

import (
	"math"
	"testing"
)

func TestComparePhonemes_Empty(t *testing.T) {
	tests := []struct{ exp, rec string }{
		{"", "abc"},
		{"abc", ""},
		{"", ""},
	}
	for _, tt := range tests {
		score, trace := ComparePhonemes(tt.exp, tt.rec)
		if score != 0 || trace != nil {
			t.Errorf("ComparePhonemes(%q, %q) = %f, %v; want 0, nil", tt.exp, tt.rec, score, trace)
		}
	}
}

func TestComparePhonemes_Exact(t *testing.T) {
	score, trace := ComparePhonemes(" Saja ", "saja")
	if score != 100 {
		t.Errorf("score = %f, want 100", score)
	}
	if len(trace) != 1 || trace[0] != (Segment{Op: OpMatch, Expected: "saja", Actual: "saja"}) {
		t.Errorf("trace = %v, want single match segment", trace)
	}
}

func TestComparePhonemes_Scores(t *testing.T) {
	tests := []struct {
		exp, rec string
		want     float64
	}{
		{"saja", "sama", 75},       // one substitution over 4
		{"kucing", "kuching", 1e2 * (1 - 1.0/7)},
		{"abc", "xyz", 0},
		{"ŋopi", "ngopi", 60},      // ŋ vs ng: 2 edits over 5 code points
		{"ab", "abcd", 50},
	}
	for _, tt := range tests {
		score, _ := ComparePhonemes(tt.exp, tt.rec)
		if math.Abs(score-tt.want) > 1e-9 {
			t.Errorf("ComparePhonemes(%q, %q) = %f, want %f", tt.exp, tt.rec, score, tt.want)
		}
	}
}

func TestComparePhonemes_TraceReconstructs(t *testing.T) {
	pairs := []struct{ exp, rec string }{
		{"saja", "sama"},
		{"sələmat pagi", "salamat pagi"},
		{"tʃinta", "sinta"},
		{"ŋopi", "kopi susu"},
		{"abc", "xyz"},
	}
	for _, p := range pairs {
		_, trace := ComparePhonemes(p.exp, p.rec)
		if got := trace.Expected(); got != p.exp {
			t.Errorf("expected parts of %q/%q = %q, want %q", p.exp, p.rec, got, p.exp)
		}
		if got := trace.Actual(); got != p.rec {
			t.Errorf("actual parts of %q/%q = %q, want %q", p.exp, p.rec, got, p.rec)
		}
		for _, s := range trace {
			switch s.Op {
			case OpDelete:
				if s.Actual != "" {
					t.Errorf("delete segment with actual %q", s.Actual)
				}
			case OpInsert:
				if s.Expected != "" {
					t.Errorf("insert segment with expected %q", s.Expected)
				}
			case OpMatch:
				if s.Expected != s.Actual {
					t.Errorf("match segment %q != %q", s.Expected, s.Actual)
				}
			}
		}
	}
}

func TestComparePhonemes_TraceOps(t *testing.T) {
	_, trace := ComparePhonemes("saja", "sama")
	want := Trace{
		{Op: OpMatch, Expected: "sa", Actual: "sa"},
		{Op: OpReplace, Expected: "j", Actual: "m"},
		{Op: OpMatch, Expected: "a", Actual: "a"},
	}
	if len(trace) != len(want) {
		t.Fatalf("trace = %v, want %v", trace, want)
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Errorf("trace[%d] = %v, want %v", i, trace[i], want[i])
		}
	}
	if trace.Count(OpMatch) != 2 || trace.Count(OpReplace) != 1 {
		t.Errorf("counts: match=%d replace=%d", trace.Count(OpMatch), trace.Count(OpReplace))
	}
}

func TestComparePhonemes_Bounds(t *testing.T) {
	inputs := []string{"a", "saja", "tʃinta", "ŋopi", "selamat pagi", "xyz"}
	for _, a := range inputs {
		for _, b := range inputs {
			score, _ := ComparePhonemes(a, b)
			if score < 0 || score > 100 {
				t.Errorf("ComparePhonemes(%q, %q) = %f out of range", a, b, score)
			}
		}
	}
}

func TestSequenceRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"abcd", "abcd", 1},
		{"abcd", "bcde", 0.75},
		{"", "", 1},
		{"ab", "", 0},
	}
	for _, tt := range tests {
		if got := SequenceRatio(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("SequenceRatio(%q, %q) = %f, want %f", tt.a, tt.b, got, tt.want)
		}
	}
}
