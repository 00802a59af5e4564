package types

// Diagnostic is a single problem reported by the type checker, parsed from
// one line of checker output. Ordering follows order of appearance.
type Diagnostic struct {
	File    string // path relative to the project root, e.g. "src/app/index.ts"
	Line    int    // 1-based
	Column  int    // 1-based
	Code    string // checker error code, e.g. "TS2307"
	Message string
	RawText string // the full original output line
}

// Anchor is a diagnostic selected as a candidate for an automated fix.
type Anchor struct {
	Diagnostic
	Specifier string // failing module specifier, set for missing-module anchors
}

// FixActionKind discriminates the FixAction variants.
type FixActionKind string

const (
	ActionRemoveLine      FixActionKind = "remove_line"
	ActionRewriteImport   FixActionKind = "rewrite_import"
	ActionInsertStatement FixActionKind = "insert_statement"
)

// FixAction is one planned mutation of a source file. Every action is
// idempotent: re-applying it to already-fixed content is a no-op.
type FixAction struct {
	Kind          FixActionKind
	File          string // path relative to the project root
	Line          int    // 1-based, RemoveLine only
	OldSpecifier  string // RewriteImport only
	NewSpecifier  string // RewriteImport only
	StatementText string // InsertStatement only
}

// Skip reasons recorded in FixOutcome and the per-category fix logs.
const (
	SkipNonRelative     = "non-relative"
	SkipTargetNotFound  = "target not found"
	SkipDirectiveAbsent = "directive not present at anchor line"
	SkipFileMissing     = "file missing"
)

// FixOutcome is the result of one attempted FixAction.
type FixOutcome struct {
	Action     FixAction
	Applied    bool
	SkipReason string // set when Applied is false
}

// ShimViolation is a guard failure for the declaration-shim file. It aborts
// the run before any source file is mutated.
type ShimViolation struct {
	File     string
	Reason   string
	Excerpts []string // offending snippets written to the audit artifact
}

func (v *ShimViolation) Error() string {
	return "shim guard: " + v.Reason + " in " + v.File
}

// Violation reasons.
const (
	ViolationForbiddenContent = "forbidden content"
	ViolationNoDeclaration    = "no module declarations"
)
