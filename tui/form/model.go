package form

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/lemmyterm/infra/editor"
)

// --- Spec ---

// Field is a single-line input.
type Field struct {
	Label       string
	Value       string
	Placeholder string
	Secret      bool
	Required    bool
}

// Spec describes a form: some single-line fields and an optional body.
type Spec struct {
	Title     string
	Fields    []Field
	Body      bool
	BodyValue string
	BodyLimit int
	Header    string // Context line shown in $EDITOR
	ViaEditor bool   // Start in $EDITOR instead of the inline textarea
}

// --- Messages ---

// SubmitMsg carries the values of a submitted form.
type SubmitMsg struct {
	Values []string // One per field, in order, trimmed
	Body   string
}

// CancelMsg is sent when the user backs out of the form.
type CancelMsg struct{}

// ErrorMsg is sent when the external editor cannot be used.
type ErrorMsg struct {
	Err error
}

// editorFinishedMsg is sent after the external editor exits.
type editorFinishedMsg struct {
	tmpPath string
	err     error
}

// --- Model ---

// Model is a form sub-view. A zero Model is unusable; create one with New.
type Model struct {
	spec    Spec
	editor  *editor.EnvEditor
	inputs  []textinput.Model
	body    textarea.Model
	focus   int // Index into inputs; len(inputs) focuses the body
	status  string
	editing bool // External editor running
}

// New creates a form model.
func New(spec Spec, ed *editor.EnvEditor) Model {
	m := Model{spec: spec, editor: ed}
	for _, f := range spec.Fields {
		in := textinput.New()
		in.Placeholder = f.Placeholder
		in.SetValue(f.Value)
		in.CharLimit = 512
		in.Width = 60
		if f.Secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		m.inputs = append(m.inputs, in)
	}
	if spec.Body {
		ta := textarea.New()
		ta.Placeholder = "Markdown supported"
		ta.ShowLineNumbers = false
		ta.CharLimit = spec.BodyLimit
		if ta.CharLimit == 0 {
			ta.CharLimit = 10000
		}
		ta.SetWidth(72)
		ta.SetHeight(8)
		ta.SetValue(spec.BodyValue)
		m.body = ta
	}
	m.setFocus(0)
	return m
}

// Init returns the initial command for the form.
func (m *Model) Init() tea.Cmd {
	if m.spec.ViaEditor && m.spec.Body && m.editor != nil {
		return m.launchEditor()
	}
	if len(m.inputs) == 0 && m.spec.Body {
		return textarea.Blink
	}
	return textinput.Blink
}

// Title returns the form title.
func (m Model) Title() string { return m.spec.Title }

// Editing reports whether the external editor currently owns the terminal.
func (m Model) Editing() bool { return m.editing }

// Values returns the current field values, trimmed, secrets included.
func (m Model) Values() []string {
	out := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		out[i] = strings.TrimSpace(in.Value())
	}
	return out
}

func (m *Model) fieldCount() int {
	n := len(m.inputs)
	if m.spec.Body {
		n++
	}
	return n
}

func (m *Model) setFocus(i int) {
	n := m.fieldCount()
	if n == 0 {
		return
	}
	m.focus = ((i % n) + n) % n
	for j := range m.inputs {
		if j == m.focus {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	if m.spec.Body {
		if m.focus == len(m.inputs) {
			m.body.Focus()
		} else {
			m.body.Blur()
		}
	}
}

func (m Model) bodyFocused() bool {
	return m.spec.Body && m.focus == len(m.inputs)
}

// launchEditor prepares the editor command and uses tea.ExecProcess so Bubble
// Tea releases the terminal while the editor runs.
func (m *Model) launchEditor() tea.Cmd {
	cmd, tmpPath, err := m.editor.Cmd(m.body.Value(), m.spec.Header)
	if err != nil {
		return func() tea.Msg {
			return ErrorMsg{Err: fmt.Errorf("preparing editor: %w", err)}
		}
	}
	m.editing = true
	m.status = "Editing in $EDITOR..."
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{tmpPath: tmpPath, err: err}
	})
}

// Update handles messages for the form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case editorFinishedMsg:
		m.editing = false
		if msg.err != nil {
			return m, send(ErrorMsg{Err: fmt.Errorf("editor: %w", msg.err)})
		}
		content, err := m.editor.ReadContent(msg.tmpPath)
		if err != nil {
			return m, send(ErrorMsg{Err: err})
		}
		if content == "" {
			if len(m.inputs) == 0 {
				return m, send(CancelMsg{})
			}
			m.status = "Body left empty."
			return m, nil
		}
		m.body.SetValue(content)
		if len(m.inputs) == 0 {
			return m, m.submit()
		}
		m.status = "Body updated from $EDITOR."
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			return m, send(CancelMsg{})
		case "ctrl+s":
			return m, m.submit()
		case "ctrl+e":
			if m.spec.Body && m.editor != nil {
				return m, m.launchEditor()
			}
		case "tab", "down":
			if msg.String() == "tab" || !m.bodyFocused() {
				m.setFocus(m.focus + 1)
				return m, nil
			}
		case "shift+tab", "up":
			if msg.String() == "shift+tab" || !m.bodyFocused() {
				m.setFocus(m.focus - 1)
				return m, nil
			}
		case "enter":
			if !m.bodyFocused() {
				if m.focus == m.fieldCount()-1 {
					return m, m.submit()
				}
				m.setFocus(m.focus + 1)
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	if m.bodyFocused() {
		m.body, cmd = m.body.Update(msg)
	} else if m.focus < len(m.inputs) {
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	}
	return m, cmd
}

func (m *Model) submit() tea.Cmd {
	values := m.Values()
	for i, f := range m.spec.Fields {
		if f.Required && values[i] == "" {
			m.status = f.Label + " is required."
			m.setFocus(i)
			return nil
		}
	}
	body := strings.TrimSpace(m.body.Value())
	if m.spec.Body && len(m.inputs) == 0 && body == "" {
		m.status = "Nothing to send."
		return nil
	}
	return send(SubmitMsg{Values: values, Body: body})
}

// send wraps a message into a tea.Cmd for immediate delivery.
func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
