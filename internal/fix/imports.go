package fix

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/agusespa/tsmend/internal/resolve"
	"github.com/agusespa/tsmend/internal/types"
)

// Import statements the insertion heuristics may synthesize.
const (
	ReactImportStatement = `import React from "react";`
	ViewImportStatement  = `import { view } from "@forge/ui";`
)

var (
	reactImportRe = regexp.MustCompile(`from\s+['"]react['"]`)
	viewImportRe  = regexp.MustCompile(`import\s+\{[^}]*\bview\b[^}]*\}\s+from\s+['"]@forge/ui['"]`)
)

// PlanImportRewrites resolves missing-module anchors into RewriteImport
// actions. Non-relative specifiers and unresolvable targets are returned as
// skipped outcomes. Only resolution-eligible anchors count against cap, and
// each distinct (file, specifier) pair yields at most one action.
func PlanImportRewrites(resolver *resolve.Resolver, anchors []types.Anchor, limit int) ([]types.FixAction, []types.FixOutcome) {
	type key struct {
		file string
		spec string
	}
	seen := make(map[key]bool)

	var actions []types.FixAction
	var skips []types.FixOutcome
	eligible := 0

	for _, a := range anchors {
		action := types.FixAction{
			Kind:         types.ActionRewriteImport,
			File:         a.File,
			OldSpecifier: a.Specifier,
		}

		if !strings.HasPrefix(a.Specifier, ".") {
			skips = append(skips, types.FixOutcome{Action: action, SkipReason: types.SkipNonRelative})
			continue
		}

		eligible++
		if eligible > limit {
			break
		}

		newSpec, reason := resolver.Resolve(a.File, a.Specifier)
		if reason != "" {
			skips = append(skips, types.FixOutcome{Action: action, SkipReason: reason})
			continue
		}

		k := key{a.File, a.Specifier}
		if seen[k] {
			continue
		}
		seen[k] = true

		action.NewSpecifier = newSpec
		actions = append(actions, action)
	}

	return actions, skips
}

// applyRewrite substitutes the old quoted specifier for the new one,
// covering both quote styles. Content that no longer mentions the old
// specifier yields a skipped outcome, which makes re-application a no-op.
func applyRewrite(content string, action types.FixAction) (string, types.FixOutcome) {
	patched := strings.ReplaceAll(content, "'"+action.OldSpecifier+"'", "'"+action.NewSpecifier+"'")
	patched = strings.ReplaceAll(patched, `"`+action.OldSpecifier+`"`, `"`+action.NewSpecifier+`"`)

	if patched == content {
		return content, types.FixOutcome{Action: action, SkipReason: "specifier not present"}
	}
	return patched, types.FixOutcome{Action: action, Applied: true}
}

// PlanImportInsertions inspects the given source files and plans synthesized
// import statements for the ones that need them: a .tsx file without a react
// import, and a file that uses the view() call pattern without importing it
// from @forge/ui. The call-pattern heuristic is deliberately textual and
// matches the checker-facing behavior, not the syntax tree.
func (e *Engine) PlanImportInsertions(files []string, extensions []string) ([]types.FixAction, error) {
	var actions []types.FixAction

	for _, file := range files {
		ext := filepath.Ext(file)
		if !containsString(extensions, ext) {
			continue
		}

		content, err := e.reader.Execute(map[string]any{"path": file})
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, err
		}

		if ext == ".tsx" && !reactImportRe.MatchString(content) {
			actions = append(actions, types.FixAction{
				Kind:          types.ActionInsertStatement,
				File:          file,
				StatementText: ReactImportStatement,
			})
		}

		usesView := strings.Contains(content, "view(") ||
			(ext == ".tsx" && strings.Contains(file, "src/admin") && strings.Contains(content, "<"))
		if usesView && !viewImportRe.MatchString(content) {
			actions = append(actions, types.FixAction{
				Kind:          types.ActionInsertStatement,
				File:          file,
				StatementText: ViewImportStatement,
			})
		}
	}

	return actions, nil
}

// applyInsert adds the statement right after the last top-of-file import
// line, or at the very top when none exists. The scan window bounds how far
// into the file existing imports are searched. Presence of the exact
// statement text anywhere in the file makes this a no-op.
func applyInsert(content string, action types.FixAction, scanWindow int) (string, types.FixOutcome) {
	if strings.Contains(content, action.StatementText) {
		return content, types.FixOutcome{Action: action, SkipReason: "already present"}
	}

	lines := strings.SplitAfter(content, "\n")

	window := len(lines)
	if scanWindow > 0 && scanWindow < window {
		window = scanWindow
	}

	lastImport := -1
	for i := 0; i < window; i++ {
		if strings.HasPrefix(lines[i], "import ") {
			lastImport = i
		}
	}

	statement := action.StatementText + "\n"
	at := lastImport + 1
	lines = append(lines[:at], append([]string{statement}, lines[at:]...)...)

	return strings.Join(lines, ""), types.FixOutcome{Action: action, Applied: true}
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
