// Package report writes the console side of an analysis: the spending
// summary and an optional preview of the raw and cleaned data.
package report

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	// TealColor matches the chart series color.
	TealColor = lipgloss.Color("#008080")
	// CoralColor is the second bar color.
	CoralColor = lipgloss.Color("#FF7F50")
	// WarningColor indicates data that was dropped or guessed.
	WarningColor = lipgloss.Color("#FFE66D")
	// SubtleColor indicates less prominent text.
	SubtleColor = lipgloss.Color("#666666")
)

// Styles holds the styles of one output stream. Styles are built from a
// renderer bound to the writer, so plain files and pipes get no escape codes.
type Styles struct {
	Rule    lipgloss.Style
	Title   lipgloss.Style
	Heading lipgloss.Style
	Money   lipgloss.Style
	Percent lipgloss.Style
	Warning lipgloss.Style
	Subtle  lipgloss.Style
	Header  lipgloss.Style
	Cell    lipgloss.Style
}

// NewStyles creates the styles for w.
func NewStyles(w io.Writer) *Styles {
	r := lipgloss.NewRenderer(w)
	return &Styles{
		Rule:    r.NewStyle().Foreground(SubtleColor),
		Title:   r.NewStyle().Bold(true).Foreground(TealColor),
		Heading: r.NewStyle().Bold(true),
		Money:   r.NewStyle().Foreground(TealColor),
		Percent: r.NewStyle().Foreground(CoralColor),
		Warning: r.NewStyle().Foreground(WarningColor),
		Subtle:  r.NewStyle().Foreground(SubtleColor),
		Header:  r.NewStyle().Bold(true).Padding(0, 1),
		Cell:    r.NewStyle().Padding(0, 1),
	}
}
