package feedback

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ieee0824/pronounce-go/content"
	"github.com/ieee0824/pronounce-go/lexicon"
	"github.com/ieee0824/pronounce-go/score"
)

const (
	maxTips       = 3
	maxListed     = 3
	maxProblems   = 3
	maxIssues     = 2
	maxExamples   = 2
	paceTolerance = 0.7
	goodThreshold = 80.0
	fairThreshold = 60.0
)

// Grade buckets a score for presentation.
type Grade string

const (
	GradeGood Grade = "good"
	GradeFair Grade = "fair"
	GradePoor Grade = "poor"
)

// GradeOf buckets s: 80 and above is good, 60 and above fair, the rest poor.
func GradeOf(s float64) Grade {
	switch {
	case s >= goodThreshold:
		return GradeGood
	case s >= fairThreshold:
		return GradeFair
	default:
		return GradePoor
	}
}

// Pace compares the learner's speaking time with the reference.
type Pace string

const (
	PaceUnknown Pace = ""
	PaceMatched Pace = "matched"
	PaceSlower  Pace = "slower"
	PaceFaster  Pace = "faster"
)

// Input is everything known about one scored attempt.
type Input struct {
	Sentence     string
	Recognized   string
	Trace        lexicon.Trace
	Scores       score.Bundle
	RefDuration  float64 // seconds, 0 if unknown
	UserDuration float64 // seconds, 0 if unknown
}

// Tip is advice on a challenging sound found in a word the learner missed.
type Tip struct {
	Sound       string `json:"sound"`
	Word        string `json:"word"`
	Description string `json:"description"`
}

// Substitution is an expected sound said as something else.
type Substitution struct {
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

// Problem aggregates the issues seen for one expected sound.
type Problem struct {
	Sound       string   `json:"sound"`
	Description string   `json:"description"`
	Issues      []string `json:"issues"`
	MoreIssues  bool     `json:"more_issues"`
	Examples    []string `json:"examples"`
}

// Sounds summarizes the phoneme trace.
type Sounds struct {
	Matches  int     `json:"matches"`
	Replaces int     `json:"replaces"`
	Deletes  int     `json:"deletes"`
	Inserts  int     `json:"inserts"`
	Accuracy float64 `json:"accuracy"`
	Message  string  `json:"message"`

	Replaced     []Substitution `json:"replaced"`
	MoreReplaced int            `json:"more_replaced"`
	Missing      []string       `json:"missing"`
	MoreMissing  int            `json:"more_missing"`
	Extra        []string       `json:"extra"`
	MoreExtra    int            `json:"more_extra"`

	Problems []Problem `json:"problems"`
}

// Report is the complete feedback for one attempt.
type Report struct {
	Grade          Grade        `json:"grade"`
	Message        string       `json:"message"`
	Pace           Pace         `json:"pace"`
	PaceMessage    string       `json:"pace_message,omitempty"`
	ContentMessage string       `json:"content_message,omitempty"`
	MissingWords   []string     `json:"missing_words,omitempty"`
	Tips           []Tip        `json:"tips,omitempty"`
	Sounds         *Sounds      `json:"sounds,omitempty"`
	Challenges     []Challenge  `json:"challenges,omitempty"`
	Scores         score.Bundle `json:"scores"`
}

// Build assembles the feedback report for in.
func Build(in Input) Report {
	r := Report{
		Grade:  GradeOf(in.Scores.Final),
		Scores: in.Scores,
	}
	r.Message = overallMessage(r.Grade)
	r.Pace, r.PaceMessage = pace(in.RefDuration, in.UserDuration)

	if in.Recognized != "" && in.Sentence != "" {
		r.ContentMessage = contentMessage(in.Scores.Content)
		r.MissingWords = dedupe(content.MissingWords(in.Sentence, in.Recognized))
		r.Tips = tips(r.MissingWords)
	}

	if len(in.Trace) > 0 {
		r.Sounds = sounds(in.Trace, in.Scores.Phoneme, in.Sentence)
		r.Challenges = IdentifyChallenges(in.Trace)
	}
	return r
}

func overallMessage(g Grade) string {
	switch g {
	case GradeGood:
		return "Excellent pronunciation! Keep it up!"
	case GradeFair:
		return "Good attempt! Try to match the phonemes and rhythm more closely."
	default:
		return "Keep practicing! Listen carefully to the original audio and try again."
	}
}

func pace(refDur, userDur float64) (Pace, string) {
	if refDur <= 0 || userDur <= 0 {
		return PaceUnknown, ""
	}
	ratio := min(refDur, userDur) / max(refDur, userDur)
	if ratio >= paceTolerance {
		return PaceMatched, "Your speaking pace matches the native example very well."
	}
	if userDur > refDur {
		return PaceSlower, "You are speaking a bit slower than the native example. That is fine while learning; speed up gradually as you get comfortable."
	}
	return PaceFaster, "You are speaking a bit faster than the native example. Try slowing down slightly to focus on each sound."
}

func contentMessage(s float64) string {
	switch GradeOf(s) {
	case GradeGood:
		return fmt.Sprintf("Great job! Your content accuracy score is %.1f%%.", s)
	case GradeFair:
		return fmt.Sprintf("Good effort! Your content accuracy score is %.1f%%. Keep practicing.", s)
	default:
		return fmt.Sprintf("Your content accuracy score is %.1f%%. Focus on the missing words to improve.", s)
	}
}

// tips returns up to maxTips pieces of advice, one per challenging sound,
// taken from the missing words in order.
func tips(missing []string) []Tip {
	var out []Tip
	given := make(map[string]bool)
	for _, w := range missing {
		for _, c := range Challenges {
			if len(out) >= maxTips {
				return out
			}
			if strings.Contains(w, c.Sound) && !given[c.Sound] {
				given[c.Sound] = true
				out = append(out, Tip{Sound: c.Sound, Word: w, Description: c.Description})
			}
		}
	}
	return out
}

func sounds(tr lexicon.Trace, phonemeScore *float64, sentence string) *Sounds {
	s := &Sounds{}
	issues := make(map[string][]string)
	var order []string
	addIssue := func(sound, issue string) {
		if sound == "" {
			return
		}
		if _, ok := issues[sound]; !ok {
			order = append(order, sound)
		}
		issues[sound] = append(issues[sound], issue)
	}

	var replaced []Substitution
	var missing, extra []string
	for _, seg := range tr {
		switch seg.Op {
		case lexicon.OpMatch:
			s.Matches++
		case lexicon.OpReplace:
			s.Replaces++
			replaced = append(replaced, Substitution{Expected: seg.Expected, Actual: seg.Actual})
			addIssue(seg.Expected, fmt.Sprintf("replaced with '%s'", seg.Actual))
		case lexicon.OpDelete:
			s.Deletes++
			missing = append(missing, seg.Expected)
			addIssue(seg.Expected, "missing")
		case lexicon.OpInsert:
			s.Inserts++
			extra = append(extra, seg.Actual)
		}
	}

	if phonemeScore != nil {
		s.Accuracy = *phonemeScore
	} else if total := s.Matches + s.Replaces + s.Deletes; total > 0 {
		s.Accuracy = float64(s.Matches) / float64(total) * 100
	}
	s.Message = soundMessage(s.Accuracy)

	s.Replaced, s.MoreReplaced = truncate(replaced, maxListed)
	s.Missing, s.MoreMissing = truncate(missing, maxListed)
	s.Extra, s.MoreExtra = truncate(extra, maxListed)

	sort.SliceStable(order, func(i, j int) bool {
		return len(issues[order[i]]) > len(issues[order[j]])
	})
	if len(order) > maxProblems {
		order = order[:maxProblems]
	}
	for _, sound := range order {
		list := issues[sound]
		p := Problem{
			Sound:       sound,
			Description: Describe(sound),
			Examples:    exampleWords(sound, sentence),
		}
		p.Issues, _ = truncate(list, maxIssues)
		p.MoreIssues = len(list) > maxIssues
		s.Problems = append(s.Problems, p)
	}
	return s
}

func soundMessage(acc float64) string {
	switch GradeOf(acc) {
	case GradeGood:
		return fmt.Sprintf("Excellent sound pronunciation! You matched %.1f%% of the sounds.", acc)
	case GradeFair:
		return fmt.Sprintf("Good work! You matched %.1f%% of the sounds. With practice you will improve even more.", acc)
	default:
		return fmt.Sprintf("You matched %.1f%% of the sounds. Indonesian has some unique sounds that take time to master, keep practicing!", acc)
	}
}

// exampleWords returns up to maxExamples words of sentence containing sound.
func exampleWords(sound, sentence string) []string {
	var out []string
	needle := strings.ToLower(sound)
	for _, w := range strings.Fields(strings.ToLower(sentence)) {
		if strings.Contains(w, needle) {
			out = append(out, w)
			if len(out) == maxExamples {
				break
			}
		}
	}
	return out
}

func truncate[T any](items []T, n int) ([]T, int) {
	if len(items) <= n {
		return items, 0
	}
	return items[:n], len(items) - n
}

func dedupe(words []string) []string {
	seen := make(map[string]bool, len(words))
	var out []string
	for _, w := range words {
		if !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}
	return out
}
