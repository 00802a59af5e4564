package diagnostics

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/agusespa/tsmend/internal/types"
)

// Parser turns the captured output of one checker invocation into typed
// diagnostics. It is pure text matching: it never opens files and never
// fails. Lines that match neither the full diagnostic shape nor one of the
// recognized code tokens are dropped.
type Parser struct {
	lineRe      *regexp.Regexp
	tokenRe     *regexp.Regexp
	specifierRe *regexp.Regexp
}

func NewParser() *Parser {
	return &Parser{
		// src/app/index.ts(12,5): error TS2307: Cannot find module './util'
		lineRe:      regexp.MustCompile(`^(src/[^:(]+\.(?:ts|tsx))\((\d+),(\d+)\): error (TS\d+): (.*)$`),
		tokenRe:     regexp.MustCompile(`error TS|Cannot find module|TS2578|TS2307|TS2362|TS2552|TS2686|TS6133`),
		specifierRe: regexp.MustCompile(`Cannot find module '([^']+)'`),
	}
}

// Parse returns the diagnostics found in output, in order of appearance.
// Absence of matches yields an empty sequence, not an error.
func (p *Parser) Parse(output string) []types.Diagnostic {
	var diags []types.Diagnostic

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")

		if m := p.lineRe.FindStringSubmatch(line); m != nil {
			lineNo, _ := strconv.Atoi(m[2])
			colNo, _ := strconv.Atoi(m[3])
			diags = append(diags, types.Diagnostic{
				File:    m[1],
				Line:    lineNo,
				Column:  colNo,
				Code:    m[4],
				Message: m[5],
				RawText: line,
			})
			continue
		}

		// Lines that only mention a recognized token are kept for
		// reporting; they carry no usable file anchor.
		if p.tokenRe.MatchString(line) {
			diags = append(diags, types.Diagnostic{
				Code:    extractCode(line),
				Message: line,
				RawText: line,
			})
		}
	}

	return diags
}

// Specifier extracts the failing module specifier from a missing-module
// diagnostic message.
func (p *Parser) Specifier(d types.Diagnostic) (string, bool) {
	m := p.specifierRe.FindStringSubmatch(d.Message)
	if m == nil {
		return "", false
	}
	return m[1], true
}

var codeRe = regexp.MustCompile(`TS\d+`)

func extractCode(line string) string {
	return codeRe.FindString(line)
}
