// Package sentence provides the practice sentences learners are scored on.
package sentence

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/ieee0824/pronounce-go/content"
	"github.com/ieee0824/pronounce-go/score"
)

// NoTranslation is used for entries loaded without a translation.
const NoTranslation = "Translation not available"

// Entry is one practice sentence.
type Entry struct {
	Sentence    string           `json:"sentence" yaml:"sentence"`
	Translation string           `json:"translation" yaml:"translation"`
	Difficulty  score.Difficulty `json:"difficulty" yaml:"difficulty"`
	AudioPath   string           `json:"audio_path,omitempty" yaml:"audio_path"`
}

// ErrNoSentences is returned when a difficulty level has no entries.
var ErrNoSentences = errors.New("sentence: no sentences for difficulty")

// Catalog holds practice sentences in insertion order.
type Catalog struct {
	entries []Entry
	index   map[string]int // normalized sentence -> position in entries
}

// New creates a Catalog from entries. Later duplicates of a sentence are ignored.
func New(entries []Entry) *Catalog {
	c := &Catalog{index: make(map[string]int)}
	for _, e := range entries {
		c.Add(e)
	}
	return c
}

// Add appends e unless an entry with the same normalized sentence exists.
// It reports whether e was added.
func (c *Catalog) Add(e Entry) bool {
	key := content.Normalize(e.Sentence)
	if _, ok := c.index[key]; ok {
		return false
	}
	if e.Translation == "" {
		e.Translation = NoTranslation
	}
	if !e.Difficulty.Valid() {
		e.Difficulty = DifficultyFor(e.Sentence)
	}
	c.index[key] = len(c.entries)
	c.entries = append(c.entries, e)
	return true
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// All returns every entry.
func (c *Catalog) All() []Entry {
	return c.entries
}

// ByDifficulty returns the entries of level d in catalog order.
func (c *Catalog) ByDifficulty(d score.Difficulty) []Entry {
	var out []Entry
	for _, e := range c.entries {
		if e.Difficulty == d {
			out = append(out, e)
		}
	}
	return out
}

// Random picks an entry of level d using rng.
func (c *Catalog) Random(d score.Difficulty, rng *rand.Rand) (Entry, error) {
	candidates := c.ByDifficulty(d)
	if len(candidates) == 0 {
		return Entry{}, fmt.Errorf("%w %q", ErrNoSentences, d)
	}
	return candidates[rng.IntN(len(candidates))], nil
}

// Find looks up sentence ignoring case, punctuation and extra whitespace.
func (c *Catalog) Find(sentence string) (Entry, bool) {
	i, ok := c.index[content.Normalize(sentence)]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// DifficultyFor derives a level from sentence length: up to 3 words is
// easy, up to 8 medium, anything longer difficult.
func DifficultyFor(sentence string) score.Difficulty {
	switch n := len(content.Words(sentence)); {
	case n <= 3:
		return score.Easy
	case n <= 8:
		return score.Medium
	default:
		return score.Difficult
	}
}
