package guard

import (
	"fmt"
	"regexp"

	"github.com/agusespa/tsmend/internal/types"
)

// ModuleScanner reports the module declarations found in shim content.
type ModuleScanner interface {
	ModuleDeclarations(content string) ([]string, error)
}

// Guard validates the declaration shim before any repair proceeds. A shim
// exists to declare modules and nothing else; global scope declarations,
// DOM globals and UI-framework namespace references mean it has drifted
// from that purpose, and the whole run aborts.
type Guard struct {
	scanner     ModuleScanner
	forbiddenRe *regexp.Regexp
	excerptRe   *regexp.Regexp
}

const forbiddenPatterns = `declare global|interface Window|\bdocument\b|\bwindow\b|namespace JSX|HTMLElement|React\.`

func New(scanner ModuleScanner) *Guard {
	return &Guard{
		scanner:     scanner,
		forbiddenRe: regexp.MustCompile(forbiddenPatterns),
		excerptRe:   regexp.MustCompile(`.{0,60}(?:` + forbiddenPatterns + `).{0,60}`),
	}
}

// Check returns a ShimViolation if content fails the policy, nil if the
// shim is acceptable. The violation carries the offending excerpts for the
// audit artifact.
func (g *Guard) Check(file, content string) (*types.ShimViolation, error) {
	if g.forbiddenRe.MatchString(content) {
		return &types.ShimViolation{
			File:     file,
			Reason:   types.ViolationForbiddenContent,
			Excerpts: g.excerptRe.FindAllString(content, -1),
		}, nil
	}

	declarations, err := g.scanner.ModuleDeclarations(content)
	if err != nil {
		return nil, fmt.Errorf("failed to scan shim %s: %w", file, err)
	}
	if len(declarations) == 0 {
		excerpt := content
		if len(excerpt) > 200 {
			excerpt = excerpt[:200]
		}
		return &types.ShimViolation{
			File:     file,
			Reason:   types.ViolationNoDeclaration,
			Excerpts: []string{excerpt},
		}, nil
	}

	return nil, nil
}
