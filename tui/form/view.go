package form

import (
	"fmt"
	"strings"

	"github.com/CrestNiraj12/lemmyterm/tui/common"
)

// View renders the form.
func (m Model) View() string {
	if m.editing {
		return m.status + "\n"
	}

	var b strings.Builder
	b.WriteString(common.TitleStyle.Render(m.spec.Title))
	b.WriteString("\n\n")
	for i, in := range m.inputs {
		label := m.spec.Fields[i].Label
		if m.spec.Fields[i].Required {
			label += " *"
		}
		b.WriteString(common.TimestampStyle.Render(label))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n\n")
	}
	if m.spec.Body {
		b.WriteString(m.body.View())
		b.WriteString("\n")
	}

	hints := []string{"ctrl+s: submit", "esc: cancel"}
	if m.fieldCount() > 1 {
		hints = append(hints, "tab: next field")
	}
	if m.spec.Body {
		hints = append(hints, "ctrl+e: $EDITOR", fmt.Sprintf("%d/%d chars", len(m.body.Value()), m.body.CharLimit))
	}
	if m.status != "" {
		b.WriteString(common.StatusBarStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(common.StatusBarStyle.Render("  " + strings.Join(hints, " • ")))
	return b.String()
}
