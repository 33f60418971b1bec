package formatter

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Palette is a small stylesheet of named [lipgloss.Style] fields bound to one output.
//
// Styles degrade to plain text when the output is not a color terminal.
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

// NewPalette builds the report palette for w.
func NewPalette(w io.Writer) *Palette {
	r := lipgloss.NewRenderer(w)
	return &Palette{
		title: r.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true),
		ok:    r.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true),
		warn:  r.NewStyle().Foreground(lipgloss.Color("#FFA500")),
		help:  r.NewStyle().Foreground(lipgloss.Color("#626262")).Italic(true),
	}
}

func (p *Palette) Title(s string) string {
	return p.title.Render(s)
}

func (p *Palette) OK(s string) string {
	return p.ok.Render(s)
}

func (p *Palette) Warn(s string) string {
	return p.warn.Render(s)
}

func (p *Palette) Help(s string) string {
	return p.help.Render(s)
}
