package fix

import (
	"sort"
	"strings"

	"github.com/agusespa/tsmend/internal/types"
)

// DirectiveToken marks a suppression comment the checker has reported as
// stale. Removal targets the exact anchored line, never a content search:
// a file may contain several identical directives.
const DirectiveToken = "@ts-expect-error"

// PlanSuppressionRemovals turns stale-suppression anchors into RemoveLine
// actions, deduplicating repeated (file, line) pairs.
func PlanSuppressionRemovals(anchors []types.Anchor) []types.FixAction {
	type key struct {
		file string
		line int
	}
	seen := make(map[key]bool)

	var actions []types.FixAction
	for _, a := range anchors {
		k := key{a.File, a.Line}
		if seen[k] {
			continue
		}
		seen[k] = true
		actions = append(actions, types.FixAction{
			Kind: types.ActionRemoveLine,
			File: a.File,
			Line: a.Line,
		})
	}
	return actions
}

// applyRemovals pops anchored lines from content. Anchors are processed
// from the highest line number to the lowest; every removal is validated
// against the directive token before the line is dropped.
func applyRemovals(content string, actions []types.FixAction) (string, []types.FixOutcome) {
	if len(actions) == 0 {
		return content, nil
	}

	ordered := make([]types.FixAction, len(actions))
	copy(ordered, actions)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Line > ordered[j].Line })

	lines := strings.SplitAfter(content, "\n")

	var outcomes []types.FixOutcome
	for _, action := range ordered {
		idx := action.Line - 1
		if idx < 0 || idx >= len(lines) || !strings.Contains(lines[idx], DirectiveToken) {
			outcomes = append(outcomes, types.FixOutcome{Action: action, SkipReason: types.SkipDirectiveAbsent})
			continue
		}
		lines = append(lines[:idx], lines[idx+1:]...)
		outcomes = append(outcomes, types.FixOutcome{Action: action, Applied: true})
	}

	return strings.Join(lines, ""), outcomes
}
