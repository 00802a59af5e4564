package tools

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/sourcegraph/go-diff/diff"
)

// GitStatusTool snapshots the working-tree state before any mutation.
type GitStatusTool struct {
	Root string
}

func (t *GitStatusTool) Name() string {
	return string(ToolNameGitStatus)
}

func (t *GitStatusTool) Description() string {
	return "Snapshot working tree status (git status --porcelain=v1 plus changed file names)"
}

func (t *GitStatusTool) Execute(args map[string]any) (string, error) {
	status, err := exec.Command("git", "-C", t.Root, "status", "--porcelain=v1").Output()
	if err != nil {
		return "", fmt.Errorf("failed to get git status: %w", err)
	}

	names, err := exec.Command("git", "-C", t.Root, "diff", "--name-only").Output()
	if err != nil {
		return "", fmt.Errorf("failed to get changed file names: %w", err)
	}

	return string(status) + "\n" + string(names), nil
}

// GitDiffTool captures the unstaged diff of the working tree.
type GitDiffTool struct {
	Root string
}

func (t *GitDiffTool) Name() string {
	return string(ToolNameGitDiff)
}

func (t *GitDiffTool) Description() string {
	return "Get the diff for unstaged changes (git diff)"
}

func (t *GitDiffTool) Execute(args map[string]any) (string, error) {
	output, err := exec.Command("git", "-C", t.Root, "diff").Output()
	if err != nil {
		return "", fmt.Errorf("failed to get diff: %w", err)
	}

	return string(output), nil
}

// ModifiedFiles parses a unified diff and returns the touched file paths,
// in diff order, with the a/ and b/ prefixes stripped.
func ModifiedFiles(diffText string) ([]string, error) {
	if strings.TrimSpace(diffText) == "" {
		return nil, nil
	}

	fileDiffs, err := diff.ParseMultiFileDiff([]byte(diffText))
	if err != nil {
		return nil, fmt.Errorf("failed to parse diff: %w", err)
	}

	var files []string
	for _, fd := range fileDiffs {
		name := fd.NewName
		if name == "/dev/null" {
			name = fd.OrigName
		}
		name = strings.TrimPrefix(name, "a/")
		name = strings.TrimPrefix(name, "b/")
		files = append(files, name)
	}

	return files, nil
}
