package tools

import "fmt"

// Tool is one external collaborator of the repair loop: a git query, the
// checker invocation, and so on. Implementations return captured text.
type Tool interface {
	Name() string
	Description() string
	Execute(args map[string]any) (string, error)
}

type ToolName string

const (
	ToolNameGitStatus ToolName = "git_status"
	ToolNameGitDiff   ToolName = "git_diff"
	ToolNameTypeCheck ToolName = "type_check"
	ToolNameReadFile  ToolName = "read_file"
	ToolNameWriteFile ToolName = "write_file"
)

type Registry struct {
	tools map[ToolName]Tool
}

func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[ToolName]Tool),
	}
}

func (r *Registry) Register(name ToolName, tool Tool) {
	r.tools[name] = tool
}

func (r *Registry) Get(name ToolName) Tool {
	tool, exists := r.tools[name]
	if !exists {
		panic(fmt.Sprintf("BUG: Requested tool '%s' not found in Registry", name))
	}
	return tool
}
