package render

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"

	"github.com/CrestNiraj12/lemmyterm/tui/common"
)

// Markdown turns a markdown body into terminal text wrapped at width.
type Markdown interface {
	Render(text string, width int) string
}

// Plain wraps text without interpreting markdown.
type Plain struct{}

func (Plain) Render(text string, width int) string {
	text = strings.TrimSpace(common.SanitizeForTerminal(text))
	if text == "" {
		return ""
	}
	return common.ContentStyle.Width(max(width, 12)).Render(text)
}

// Glamour renders markdown with glamour, falling back to Plain on failure.
// Renderers are built lazily, one per wrap width.
type Glamour struct {
	style     string
	renderers map[int]*glamour.TermRenderer
}

// NewGlamour creates a Glamour renderer using a standard glamour style such as "dark".
func NewGlamour(style string) *Glamour {
	if style == "" {
		style = "dark"
	}
	return &Glamour{style: style, renderers: make(map[int]*glamour.TermRenderer)}
}

func (g *Glamour) Render(text string, width int) string {
	text = strings.TrimSpace(common.SanitizeForTerminal(text))
	if text == "" {
		return ""
	}
	width = max(width, 12)
	r, ok := g.renderers[width]
	if !ok {
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(g.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return Plain{}.Render(text, width)
		}
		g.renderers[width] = r
	}
	out, err := r.Render(text)
	if err != nil {
		return Plain{}.Render(text, width)
	}
	return trimBlankLines(out)
}

// trimBlankLines drops the blank lines glamour pads its output with.
func trimBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(ansi.Strip(lines[start])) == "" {
		start++
	}
	for end > start && strings.TrimSpace(ansi.Strip(lines[end-1])) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
