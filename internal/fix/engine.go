package fix

import (
	"errors"
	"os"

	"github.com/agusespa/tsmend/internal/tools"
	"github.com/agusespa/tsmend/internal/types"
	"github.com/agusespa/tsmend/pkg/config"
)

// Engine applies planned FixActions to source files. Mutation follows a
// staged-patch model: actions are computed first, then validated against
// the current content of each file, then applied one file at a time with a
// single write per file. Validation failures downgrade an action to a
// skipped outcome; they never abort the run. All file access goes through
// the registered read/write tools.
type Engine struct {
	reader tools.Tool
	writer tools.Tool
	limits config.LimitsConfig
}

func NewEngine(reader, writer tools.Tool, limits config.LimitsConfig) *Engine {
	return &Engine{reader: reader, writer: writer, limits: limits}
}

// Apply executes actions grouped per file, preserving the order in which
// files first appear. Each file is fully read, patched in memory and
// written back only if its content actually changed.
func (e *Engine) Apply(actions []types.FixAction) ([]types.FixOutcome, error) {
	byFile := make(map[string][]types.FixAction)
	var fileOrder []string
	for _, action := range actions {
		if _, seen := byFile[action.File]; !seen {
			fileOrder = append(fileOrder, action.File)
		}
		byFile[action.File] = append(byFile[action.File], action)
	}

	var outcomes []types.FixOutcome
	for _, file := range fileOrder {
		fileOutcomes, err := e.applyToFile(file, byFile[file])
		if err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, fileOutcomes...)
	}

	return outcomes, nil
}

func (e *Engine) applyToFile(file string, actions []types.FixAction) ([]types.FixOutcome, error) {
	original, err := e.reader.Execute(map[string]any{"path": file})
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			outcomes := make([]types.FixOutcome, 0, len(actions))
			for _, action := range actions {
				outcomes = append(outcomes, types.FixOutcome{Action: action, SkipReason: types.SkipFileMissing})
			}
			return outcomes, nil
		}
		return nil, err
	}

	content := original
	var outcomes []types.FixOutcome

	// Line removals go first so that later textual strategies see the
	// shrunk file; removals themselves are ordered high-to-low inside
	// applyRemovals so earlier pops never shift pending anchor lines.
	var removals []types.FixAction
	var rest []types.FixAction
	for _, action := range actions {
		if action.Kind == types.ActionRemoveLine {
			removals = append(removals, action)
		} else {
			rest = append(rest, action)
		}
	}

	content, removalOutcomes := applyRemovals(content, removals)
	outcomes = append(outcomes, removalOutcomes...)

	for _, action := range rest {
		var outcome types.FixOutcome
		switch action.Kind {
		case types.ActionRewriteImport:
			content, outcome = applyRewrite(content, action)
		case types.ActionInsertStatement:
			content, outcome = applyInsert(content, action, e.limits.ImportScanWindow)
		default:
			outcome = types.FixOutcome{Action: action, SkipReason: "unknown action"}
		}
		outcomes = append(outcomes, outcome)
	}

	if content != original {
		if _, err := e.writer.Execute(map[string]any{"path": file, "content": content}); err != nil {
			return outcomes, err
		}
	}

	return outcomes, nil
}
