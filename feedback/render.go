package feedback

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ieee0824/pronounce-go/lexicon"
)

// Colors used by the terminal report.
var (
	ColorGreen  = lipgloss.Color("#00AF00")
	ColorOrange = lipgloss.Color("#FF8700")
	ColorRed    = lipgloss.Color("#FF0000")
	ColorCyan   = lipgloss.Color("#00FFFF")
	ColorGray   = lipgloss.Color("#666666")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan)

	headerStyle = lipgloss.NewStyle().
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	matchStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	replaceStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	deleteStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Strikethrough(true)

	insertStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Underline(true)
)

// GradeColor returns the display color for g.
func GradeColor(g Grade) lipgloss.Color {
	switch g {
	case GradeGood:
		return ColorGreen
	case GradeFair:
		return ColorOrange
	default:
		return ColorRed
	}
}

// Render formats r for a terminal.
func Render(r Report) string {
	var b strings.Builder

	scoreStyle := lipgloss.NewStyle().Bold(true).Foreground(GradeColor(r.Grade))
	b.WriteString(titleStyle.Render("Pronunciation Score") + "\n")
	b.WriteString(scoreStyle.Render(fmt.Sprintf("%.1f%%", r.Scores.Final)) + "  " + r.Message + "\n")
	fmt.Fprintf(&b, "  Acoustic: %.1f%%\n", r.Scores.Acoustic)
	fmt.Fprintf(&b, "  Content:  %.1f%%\n", r.Scores.Content)
	if r.Scores.Phoneme != nil {
		fmt.Fprintf(&b, "  Phoneme:  %.1f%%\n", *r.Scores.Phoneme)
	}

	if r.PaceMessage != "" {
		b.WriteString("\n" + headerStyle.Render("Speaking Pace") + "\n")
		b.WriteString("  " + r.PaceMessage + "\n")
	}

	if r.ContentMessage != "" {
		b.WriteString("\n" + headerStyle.Render("Content Accuracy") + "\n")
		b.WriteString("  " + r.ContentMessage + "\n")
		if len(r.MissingWords) > 0 {
			b.WriteString("  Words to focus on: " + strings.Join(r.MissingWords, ", ") + "\n")
		}
		for _, t := range r.Tips {
			fmt.Fprintf(&b, "  For '%s' in '%s': %s\n", t.Sound, t.Word, t.Description)
		}
	}

	if s := r.Sounds; s != nil {
		b.WriteString("\n" + headerStyle.Render("Sound Accuracy") + "\n")
		b.WriteString("  " + s.Message + "\n")
		for _, sub := range s.Replaced {
			fmt.Fprintf(&b, "  '%s' → '%s'\n", sub.Expected, sub.Actual)
		}
		writeMore(&b, s.MoreReplaced)
		for _, m := range s.Missing {
			fmt.Fprintf(&b, "  missing '%s'\n", m)
		}
		writeMore(&b, s.MoreMissing)
		for _, e := range s.Extra {
			fmt.Fprintf(&b, "  extra '%s'\n", e)
		}
		writeMore(&b, s.MoreExtra)
		for _, p := range s.Problems {
			issues := strings.Join(p.Issues, ", ")
			if p.MoreIssues {
				issues += ", etc."
			}
			fmt.Fprintf(&b, "  Sound '%s': %s (%s)\n", p.Sound, p.Description, issues)
			if len(p.Examples) > 0 {
				b.WriteString(dimStyle.Render("    e.g. "+strings.Join(p.Examples, ", ")) + "\n")
			}
		}
	}
	return b.String()
}

func writeMore(b *strings.Builder, n int) {
	if n > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  ... and %d more", n)) + "\n")
	}
}

// RenderTrace colors each trace segment by its op: matches green,
// replacements orange, deletions struck through and insertions underlined.
func RenderTrace(tr lexicon.Trace) string {
	var exp, act strings.Builder
	for _, s := range tr {
		switch s.Op {
		case lexicon.OpMatch:
			exp.WriteString(matchStyle.Render(s.Expected))
			act.WriteString(matchStyle.Render(s.Actual))
		case lexicon.OpReplace:
			exp.WriteString(replaceStyle.Render(s.Expected))
			act.WriteString(replaceStyle.Render(s.Actual))
		case lexicon.OpDelete:
			exp.WriteString(deleteStyle.Render(s.Expected))
		case lexicon.OpInsert:
			act.WriteString(insertStyle.Render(s.Actual))
		}
	}
	return "expected:   " + exp.String() + "\nrecognized: " + act.String()
}
