package runner

import (
	"fmt"

	"github.com/agusespa/tsmend/internal/diagnostics"
	"github.com/agusespa/tsmend/internal/tools"
	"github.com/agusespa/tsmend/internal/types"
)

// Runner re-invokes the external checker and re-parses its output, so the
// remaining diagnostics can be diffed against the pre-fix snapshot.
type Runner struct {
	checker tools.Tool
	parser  *diagnostics.Parser
}

func New(checker tools.Tool, parser *diagnostics.Parser) *Runner {
	return &Runner{checker: checker, parser: parser}
}

// Run blocks on one checker invocation and returns the verbatim combined
// output alongside the diagnostics parsed from it.
func (r *Runner) Run() (string, []types.Diagnostic, error) {
	output, err := r.checker.Execute(map[string]any{})
	if err != nil {
		return "", nil, fmt.Errorf("checker invocation failed: %w", err)
	}

	return output, r.parser.Parse(output), nil
}
