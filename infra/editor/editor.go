package editor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// EnvEditor prepares an external editor command using $VISUAL or $EDITOR
// (fallback: "vi"). It does NOT run the editor itself. Callers hand the
// returned *exec.Cmd to tea.ExecProcess so Bubble Tea releases the terminal.
type EnvEditor struct{}

// NewEnvEditor creates an EnvEditor.
func NewEnvEditor() *EnvEditor {
	return &EnvEditor{}
}

const instructionTemplate = `<!--
lemmyterm: %s

- SAVE and EXIT to submit (e.g., :wq in vi).
- Emptying the file cancels.
- Markdown is supported.
-->

`

// instructionComment is the template with no context line filled in.
var instructionComment = fmt.Sprintf(instructionTemplate, "Write below.")

// Cmd prepares an *exec.Cmd for the editor and a temp file path.
// It writes the instruction comment, with header as its context line, and
// content to the temp file.
func (e *EnvEditor) Cmd(content, header string) (*exec.Cmd, string, error) {
	editorCmd := strings.TrimSpace(os.Getenv("VISUAL"))
	if editorCmd == "" {
		editorCmd = strings.TrimSpace(os.Getenv("EDITOR"))
	}
	if editorCmd == "" {
		editorCmd = "vi"
	}
	fields := strings.Fields(editorCmd)

	tmpFile, err := os.CreateTemp("", "lemmyterm-*.md")
	if err != nil {
		return nil, "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer tmpFile.Close()

	intro := instructionComment
	if header = strings.TrimSpace(header); header != "" {
		intro = fmt.Sprintf(instructionTemplate, header)
	}
	if _, err := tmpFile.WriteString(intro + content); err != nil {
		os.Remove(tmpPath)
		return nil, "", fmt.Errorf("writing to temp file: %w", err)
	}

	args := append([]string(nil), fields[1:]...)
	switch filepath.Base(fields[0]) {
	case "vi", "vim", "nvim":
		args = append(args, "+") // Start at the end of the file.
	}
	args = append(args, tmpPath)
	return exec.Command(fields[0], args...), tmpPath, nil
}

// ReadContent reads the temp file, trims whitespace, and removes the file.
// It strips the instruction comment before returning.
func (e *EnvEditor) ReadContent(path string) (string, error) {
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading temp file: %w", err)
	}

	content := string(data)
	if strings.HasPrefix(strings.TrimSpace(content), "<!--") {
		if idx := strings.Index(content, "-->"); idx != -1 {
			content = content[idx+3:]
		}
	}
	return strings.TrimSpace(content), nil
}
