package tools

import (
	"fmt"
	"os"
	"path/filepath"
)

// ReadFileTool reads a project-relative source file. A missing file keeps
// os.ErrNotExist in the error chain so callers can treat it as a skip.
type ReadFileTool struct {
	Root string
}

func (t *ReadFileTool) Name() string {
	return string(ToolNameReadFile)
}

func (t *ReadFileTool) Description() string {
	return "Read content from a project source file"
}

func (t *ReadFileTool) Execute(args map[string]any) (string, error) {
	path, ok := args["path"].(string)
	if !ok {
		return "", fmt.Errorf("path parameter required")
	}

	data, err := os.ReadFile(filepath.Join(t.Root, filepath.FromSlash(path)))
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	return string(data), nil
}

// WriteFileTool writes a project-relative source file.
type WriteFileTool struct {
	Root string
}

func (t *WriteFileTool) Name() string {
	return string(ToolNameWriteFile)
}

func (t *WriteFileTool) Description() string {
	return "Write content to a project source file"
}

func (t *WriteFileTool) Execute(args map[string]any) (string, error) {
	path, ok := args["path"].(string)
	if !ok {
		return "", fmt.Errorf("path parameter required")
	}

	content, ok := args["content"].(string)
	if !ok {
		return "", fmt.Errorf("content parameter required")
	}

	if err := os.WriteFile(filepath.Join(t.Root, filepath.FromSlash(path)), []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return fmt.Sprintf("wrote %d bytes to %s", len(content), path), nil
}
