package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agusespa/tsmend/internal/anchors"
	"github.com/agusespa/tsmend/internal/diagnostics"
	"github.com/agusespa/tsmend/internal/fix"
	"github.com/agusespa/tsmend/internal/guard"
	"github.com/agusespa/tsmend/internal/report"
	"github.com/agusespa/tsmend/internal/resolve"
	"github.com/agusespa/tsmend/internal/runner"
	"github.com/agusespa/tsmend/internal/tools"
	"github.com/agusespa/tsmend/internal/types"
	"github.com/agusespa/tsmend/pkg/config"
	"github.com/agusespa/tsmend/pkg/spinner"
)

// Pipeline drives one remediation run: guard gate, pre-fix check, anchor
// classification, mechanical fixes, convergence re-check. Strictly
// sequential; the only blocking waits are the two checker invocations.
type Pipeline struct {
	cfg        *config.Config
	registry   *tools.Registry
	writer     *report.Writer
	parser     *diagnostics.Parser
	classifier *anchors.Classifier
	resolver   *resolve.Resolver
	engine     *fix.Engine
	shimGuard  *guard.Guard
	runner     *runner.Runner

	// Sweep removes every stale suppression up to the report cap instead
	// of the per-run fix cap.
	Sweep bool

	// Quiet suppresses progress output; used by tests.
	Quiet bool
}

func New(cfg *config.Config, registry *tools.Registry, writer *report.Writer) (*Pipeline, error) {
	scanner, err := tools.NewShimScanner()
	if err != nil {
		return nil, fmt.Errorf("failed to create shim scanner: %w", err)
	}

	parser := diagnostics.NewParser()

	return &Pipeline{
		cfg:        cfg,
		registry:   registry,
		writer:     writer,
		parser:     parser,
		classifier: anchors.NewClassifier(parser, cfg.Limits),
		resolver:   resolve.NewResolver(cfg.Project.Root, cfg.Project.SourceExtensions),
		engine:     fix.NewEngine(registry.Get(tools.ToolNameReadFile), registry.Get(tools.ToolNameWriteFile), cfg.Limits),
		shimGuard:  guard.New(scanner),
		runner:     runner.New(registry.Get(tools.ToolNameTypeCheck), parser),
	}, nil
}

// Run executes all stages. A returned *types.ShimViolation means the run
// aborted at the gate, before any source file was touched.
func (p *Pipeline) Run() error {
	p.snapshotStatus()

	if err := p.gate(); err != nil {
		return err
	}

	p.progress("Running type check...")
	_, diags, err := p.checkOnce(report.ArtifactCheckBefore)
	if err != nil {
		return err
	}

	buckets := p.classifier.Classify(diags)
	if err := p.writer.WriteAnchors(report.ArtifactAnchorsBefore, buckets.All, p.cfg.Limits.AnchorReportCap); err != nil {
		return err
	}
	p.progress(fmt.Sprintf("   ✓ %d diagnostics captured", len(buckets.All)))

	if err := p.applyFixes(diags, buckets); err != nil {
		return err
	}

	p.progress("Re-running type check...")
	_, remaining, err := p.checkOnce(report.ArtifactCheckAfter)
	if err != nil {
		return err
	}
	if err := p.writer.WriteAnchors(report.ArtifactRemaining, remaining, p.cfg.Limits.RemainingReportCap); err != nil {
		return err
	}
	p.progress(fmt.Sprintf("   ✓ %d diagnostics remaining", len(remaining)))

	return nil
}

// snapshotStatus records the version-control state. The snapshot is an
// audit aid, not a gate: outside a git work tree the error text itself is
// recorded and the run continues.
func (p *Pipeline) snapshotStatus() {
	statusTool := p.registry.Get(tools.ToolNameGitStatus)
	diffTool := p.registry.Get(tools.ToolNameGitDiff)

	status, err := statusTool.Execute(map[string]any{})
	if err != nil {
		_ = p.writer.WriteStatus("status unavailable: "+err.Error()+"\n", nil)
		return
	}

	var modified []string
	if diffText, err := diffTool.Execute(map[string]any{}); err == nil {
		if files, err := tools.ModifiedFiles(diffText); err == nil {
			modified = files
		}
	}

	_ = p.writer.WriteStatus(status, modified)
}

// gate inventories the declaration shims and validates the configured shim
// file. A violation aborts the whole run; the audit artifact is written
// either way.
func (p *Pipeline) gate() error {
	shims, err := tools.FindShimFiles(p.cfg.Project.Root, p.cfg.Project.SrcDir)
	if err != nil {
		return err
	}

	shimPath := filepath.Join(p.cfg.Project.Root, filepath.FromSlash(p.cfg.Project.ShimFile))
	data, err := os.ReadFile(shimPath)
	if err != nil {
		if os.IsNotExist(err) {
			return p.writer.WriteShimAudit(shims, nil)
		}
		return fmt.Errorf("failed to read shim %s: %w", p.cfg.Project.ShimFile, err)
	}

	violation, err := p.shimGuard.Check(p.cfg.Project.ShimFile, string(data))
	if err != nil {
		return err
	}
	if err := p.writer.WriteShimAudit(shims, violation); err != nil {
		return err
	}
	if violation != nil {
		p.progress("   ✕ shim guard violation: " + violation.Reason)
		return violation
	}

	return nil
}

func (p *Pipeline) checkOnce(artifact string) (string, []types.Diagnostic, error) {
	var s *spinner.Spinner
	if !p.Quiet {
		s = spinner.New("Waiting for the type checker...")
		s.Start()
	}

	output, diags, err := p.runner.Run()

	if s != nil {
		s.Stop()
	}
	if err != nil {
		return "", nil, err
	}

	if err := p.writer.WriteCheckerOutput(artifact, output); err != nil {
		return "", nil, err
	}
	return output, diags, nil
}

// applyFixes plans and applies the suppression removals and import
// rewrites from the anchored diagnostics, then runs the mechanical import
// insertion pass over the anchored files.
func (p *Pipeline) applyFixes(diags []types.Diagnostic, buckets *anchors.Buckets) error {
	suppressions := buckets.Suppressions
	if p.Sweep {
		suppressions = p.classifier.SuppressionSweep(diags, p.cfg.Limits.AnchorReportCap)
	}

	removals := fix.PlanSuppressionRemovals(suppressions)
	rewrites, skips := fix.PlanImportRewrites(p.resolver, buckets.Imports, p.cfg.Limits.ImportFixCap)

	outcomes, err := p.engine.Apply(append(removals, rewrites...))
	if err != nil {
		return err
	}

	var removalOutcomes, importOutcomes []types.FixOutcome
	for _, o := range outcomes {
		if o.Action.Kind == types.ActionRemoveLine {
			removalOutcomes = append(removalOutcomes, o)
		} else {
			importOutcomes = append(importOutcomes, o)
		}
	}
	importOutcomes = append(importOutcomes, skips...)

	if err := p.writer.WriteSuppressionLog(removalOutcomes); err != nil {
		return err
	}
	if err := p.writer.WriteImportLog(importOutcomes, p.cfg.Limits.SkipReportCap); err != nil {
		return err
	}
	p.progress(fmt.Sprintf("   ✓ %d suppressions removed, %d imports rewritten", countApplied(removalOutcomes), countApplied(importOutcomes)))

	inserts, err := p.engine.PlanImportInsertions(buckets.Files(), p.cfg.Project.SourceExtensions)
	if err != nil {
		return err
	}
	insertOutcomes, err := p.engine.Apply(inserts)
	if err != nil {
		return err
	}
	if err := p.writer.WriteInsertLog(insertOutcomes); err != nil {
		return err
	}
	p.progress(fmt.Sprintf("   ✓ %d imports inserted", countApplied(insertOutcomes)))

	return nil
}

func (p *Pipeline) progress(msg string) {
	if !p.Quiet {
		fmt.Println(msg)
	}
}

func countApplied(outcomes []types.FixOutcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Applied {
			n++
		}
	}
	return n
}
