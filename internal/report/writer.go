package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agusespa/tsmend/internal/types"
)

// Artifact file names, one per pipeline stage. The numbering mirrors the
// stage order so a run directory reads as a transcript.
const (
	ArtifactStatus          = "00_status.txt"
	ArtifactShimAudit       = "01_shim_audit.txt"
	ArtifactCheckBefore     = "typecheck_before.txt"
	ArtifactAnchorsBefore   = "03_anchors_before.txt"
	ArtifactSuppressionsLog = "04a_suppressions.txt"
	ArtifactImportsLog      = "04b_imports.txt"
	ArtifactInsertsLog      = "04c_inserted.txt"
	ArtifactCheckAfter      = "typecheck_after.txt"
	ArtifactRemaining       = "06_remaining.txt"
)

// Writer persists the intermediate artifacts of one remediation run into a
// single output directory.
type Writer struct {
	dir string
}

func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return &Writer{dir: dir}, nil
}

func (w *Writer) Dir() string {
	return w.dir
}

func (w *Writer) write(name, content string) error {
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write artifact %s: %w", name, err)
	}
	return nil
}

// WriteStatus records the version-control snapshot plus the modified file
// list recovered from the diff.
func (w *Writer) WriteStatus(status string, modified []string) error {
	var b strings.Builder
	b.WriteString(status)
	if len(modified) > 0 {
		b.WriteString("\nmodified files:\n")
		for _, f := range modified {
			b.WriteString(f + "\n")
		}
	}
	return w.write(ArtifactStatus, b.String())
}

// WriteShimAudit records the shim inventory and, when the guard fired, the
// violation with its offending excerpts.
func (w *Writer) WriteShimAudit(shimFiles []string, violation *types.ShimViolation) error {
	var b strings.Builder
	for _, f := range shimFiles {
		b.WriteString(f + "\n")
	}
	if violation != nil {
		switch violation.Reason {
		case types.ViolationForbiddenContent:
			b.WriteString(fmt.Sprintf("ERROR: forbidden content in %s\n", violation.File))
		default:
			b.WriteString(fmt.Sprintf("ERROR: shim %s does not contain module declarations\n", violation.File))
		}
		for _, excerpt := range violation.Excerpts {
			b.WriteString(excerpt + "\n")
		}
	}
	return w.write(ArtifactShimAudit, b.String())
}

// WriteCheckerOutput stores the verbatim combined output of one checker
// invocation.
func (w *Writer) WriteCheckerOutput(name, output string) error {
	return w.write(name, output)
}

// WriteAnchors stores the raw text of recognized diagnostics, capped.
func (w *Writer) WriteAnchors(name string, diags []types.Diagnostic, limit int) error {
	lines := make([]string, 0, len(diags))
	for _, d := range diags {
		if len(lines) >= limit {
			break
		}
		lines = append(lines, d.RawText)
	}
	return w.write(name, strings.Join(lines, "\n"))
}

// WriteSuppressionLog records every removed suppression line.
func (w *Writer) WriteSuppressionLog(outcomes []types.FixOutcome) error {
	var lines []string
	for _, o := range outcomes {
		if o.Applied {
			lines = append(lines, fmt.Sprintf("REMOVED %s line %d", o.Action.File, o.Action.Line))
		}
	}
	return w.write(ArtifactSuppressionsLog, strings.Join(lines, "\n"))
}

// WriteImportLog records rewritten specifiers followed by the skipped
// anchors, the latter capped.
func (w *Writer) WriteImportLog(outcomes []types.FixOutcome, skipLimit int) error {
	var b strings.Builder
	for _, o := range outcomes {
		if o.Applied {
			b.WriteString(fmt.Sprintf("FIXED import: %s %s -> %s\n", o.Action.File, o.Action.OldSpecifier, o.Action.NewSpecifier))
		}
	}
	skips := 0
	for _, o := range outcomes {
		if o.Applied {
			continue
		}
		if skips >= skipLimit {
			break
		}
		skips++
		b.WriteString(fmt.Sprintf("SKIP: %s %s (%s)\n", o.Action.File, o.Action.OldSpecifier, o.SkipReason))
	}
	return w.write(ArtifactImportsLog, b.String())
}

// WriteInsertLog records the files that received a synthesized import.
func (w *Writer) WriteInsertLog(outcomes []types.FixOutcome) error {
	var lines []string
	seen := make(map[string]bool)
	for _, o := range outcomes {
		if o.Applied && !seen[o.Action.File] {
			seen[o.Action.File] = true
			lines = append(lines, "UPDATED "+o.Action.File)
		}
	}
	return w.write(ArtifactInsertsLog, strings.Join(lines, "\n"))
}
