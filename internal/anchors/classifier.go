package anchors

import (
	"regexp"
	"sort"

	"github.com/agusespa/tsmend/internal/diagnostics"
	"github.com/agusespa/tsmend/internal/types"
	"github.com/agusespa/tsmend/pkg/config"
)

// Codes the fix engine can act on.
const (
	CodeStaleSuppression = "TS2578"
	CodeModuleNotFound   = "TS2307"
)

// Buckets holds the classified diagnostics of one checker run. Order within
// every bucket is order of appearance in the checker output.
type Buckets struct {
	// Suppressions are stale-suppression anchors, already capped at the
	// configured per-run fix limit.
	Suppressions []types.Anchor
	// Imports are missing-module anchors with their failing specifier.
	// They are not capped here: non-relative specifiers must still be
	// recorded as skips, so the eligibility cap is enforced during
	// planning instead.
	Imports []types.Anchor
	// All is every recognized diagnostic, for reporting.
	All []types.Diagnostic
}

// anchorFileRe pulls source paths out of diagnostic lines that the
// full-shape parse did not anchor to a file. The longer extension comes
// first so ordered alternation cannot truncate ".tsx" to ".ts".
var anchorFileRe = regexp.MustCompile(`src/[^:(]+\.(?:tsx|ts)`)

// Files returns the distinct source files mentioned by anchored
// diagnostics, sorted. Token-matched lines contribute the paths embedded
// in their raw text. Used to select candidates for mechanical import
// insertion.
func (b *Buckets) Files() []string {
	seen := make(map[string]bool)
	for _, d := range b.All {
		if d.File != "" {
			seen[d.File] = true
			continue
		}
		for _, f := range anchorFileRe.FindAllString(d.RawText, -1) {
			seen[f] = true
		}
	}
	files := make([]string, 0, len(seen))
	for f := range seen {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

type Classifier struct {
	parser *diagnostics.Parser
	limits config.LimitsConfig
}

func NewClassifier(parser *diagnostics.Parser, limits config.LimitsConfig) *Classifier {
	return &Classifier{parser: parser, limits: limits}
}

// Classify buckets diags by error code. Diagnostics without a file anchor
// are kept for reporting only.
func (c *Classifier) Classify(diags []types.Diagnostic) *Buckets {
	buckets := &Buckets{All: diags}

	for _, d := range diags {
		if d.File == "" {
			continue
		}

		switch d.Code {
		case CodeStaleSuppression:
			if len(buckets.Suppressions) < c.limits.SuppressionFixCap {
				buckets.Suppressions = append(buckets.Suppressions, types.Anchor{Diagnostic: d})
			}
		case CodeModuleNotFound:
			if spec, ok := c.parser.Specifier(d); ok {
				buckets.Imports = append(buckets.Imports, types.Anchor{Diagnostic: d, Specifier: spec})
			}
		}
	}

	return buckets
}

// SuppressionSweep selects every stale-suppression anchor up to limit,
// ignoring the per-run fix cap. Used by the dedicated sweep mode.
func (c *Classifier) SuppressionSweep(diags []types.Diagnostic, limit int) []types.Anchor {
	var hits []types.Anchor
	for _, d := range diags {
		if d.File == "" || d.Code != CodeStaleSuppression {
			continue
		}
		if len(hits) >= limit {
			break
		}
		hits = append(hits, types.Anchor{Diagnostic: d})
	}
	return hits
}
