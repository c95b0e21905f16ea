// Package score combines component scores into a final pronunciation score
// and holds the difficulty policy around it.
package score

// SuccessThreshold is the final score at which an attempt counts as successful.
const SuccessThreshold = 70.0

// Combine merges the component scores into the final score. With a phoneme
// score the weights are 0.3/0.3/0.4 (acoustic/content/phoneme), without it
// 0.4/0.6 (acoustic/content). The result is not clamped.
func Combine(acoustic, content float64, phoneme *float64) float64 {
	if phoneme != nil {
		return acoustic*0.3 + content*0.3 + *phoneme*0.4
	}
	return acoustic*0.4 + content*0.6
}

// Bundle holds the component scores of one attempt and their combination.
type Bundle struct {
	Acoustic float64  `json:"acoustic"`
	Content  float64  `json:"content"`
	Phoneme  *float64 `json:"phoneme,omitempty"`
	Final    float64  `json:"final"`
}

// NewBundle combines the components into a Bundle.
func NewBundle(acoustic, content float64, phoneme *float64) Bundle {
	return Bundle{
		Acoustic: acoustic,
		Content:  content,
		Phoneme:  phoneme,
		Final:    Combine(acoustic, content, phoneme),
	}
}

// Success reports whether the final score reaches SuccessThreshold.
func (b Bundle) Success() bool {
	return b.Final >= SuccessThreshold
}
