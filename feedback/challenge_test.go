package feedback

import (
	"testing"

	"github.com/ieee0824/pronounce-go/lexicon"
)

func TestIdentifyChallenges(t *testing.T) {
	tr := lexicon.Trace{
		{Op: lexicon.OpMatch, Expected: "sa", Actual: "sa"},
		{Op: lexicon.OpReplace, Expected: "r", Actual: "l"},  // r replaced
		{Op: lexicon.OpReplace, Expected: "ng", Actual: "n"}, // ng replaced; n kept but ng absent
		{Op: lexicon.OpDelete, Expected: "u"},
		{Op: lexicon.OpReplace, Expected: "r", Actual: "rr"}, // r still present: not a challenge
		{Op: lexicon.OpDelete, Expected: "r"},                // duplicate r
		{Op: lexicon.OpInsert, Actual: "j"},
	}
	got := IdentifyChallenges(tr)
	want := []string{"r", "ng", "u"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want sounds %v", got, want)
	}
	for i, w := range want {
		if got[i].Sound != w {
			t.Errorf("got[%d] = %q, want %q", i, got[i].Sound, w)
		}
		if got[i].Description == "" {
			t.Errorf("got[%d] has no description", i)
		}
	}
}

func TestIdentifyChallenges_MatchOnly(t *testing.T) {
	tr := lexicon.Trace{{Op: lexicon.OpMatch, Expected: "rumah", Actual: "rumah"}}
	if got := IdentifyChallenges(tr); len(got) != 0 {
		t.Errorf("got %v, want none", got)
	}
}

func TestDescribe(t *testing.T) {
	if Describe("ny") == defaultDescription {
		t.Error("ny should have a specific description")
	}
	if Describe("ŋ") != defaultDescription {
		t.Error("unknown sound should get the default description")
	}
}
