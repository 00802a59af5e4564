package tools

import (
	"fmt"
	"os/exec"
	"strings"
)

// TypeCheckTool runs the externally-defined checker command against the
// project root and captures its interleaved stdout/stderr. A non-zero exit
// is the normal signal that diagnostics remain, so it is returned as data,
// never as an error.
type TypeCheckTool struct {
	Root    string
	Command []string
}

func (t *TypeCheckTool) Name() string {
	return string(ToolNameTypeCheck)
}

func (t *TypeCheckTool) Description() string {
	return fmt.Sprintf("Run the type checker (%s)", strings.Join(t.Command, " "))
}

func (t *TypeCheckTool) Execute(args map[string]any) (string, error) {
	if len(t.Command) == 0 {
		return "", fmt.Errorf("checker command not configured")
	}

	cmd := exec.Command(t.Command[0], t.Command[1:]...)
	cmd.Dir = t.Root

	output, err := cmd.CombinedOutput()
	if err != nil {
		if _, expected := err.(*exec.ExitError); expected {
			return string(output), nil
		}
		return "", fmt.Errorf("failed to run checker: %w", err)
	}

	return string(output), nil
}
