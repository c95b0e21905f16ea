package score

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty is the level of a practice sentence.
type Difficulty string

const (
	Easy      Difficulty = "easy"
	Medium    Difficulty = "medium"
	Difficult Difficulty = "difficult"
)

// Difficulties lists every level from easiest to hardest.
var Difficulties = []Difficulty{Easy, Medium, Difficult}

// RecordingDuration is how long a learner is given to say a sentence of
// this difficulty. Unknown levels get the medium duration.
func (d Difficulty) RecordingDuration() time.Duration {
	switch d {
	case Easy:
		return 2 * time.Second
	case Difficult:
		return 4 * time.Second
	default:
		return 3 * time.Second
	}
}

// Valid reports whether d is a known level.
func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Medium, Difficult:
		return true
	}
	return false
}

// ParseDifficulty parses a level name, ignoring case and surrounding space.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("unknown difficulty %q (want easy, medium or difficult)", s)
	}
	return d, nil
}
