package resolve

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/agusespa/tsmend/internal/types"
)

// Resolver proposes corrected specifiers for relative imports that failed
// to resolve. Probe order mirrors the module system's own resolution:
// exact file with each known extension, then a directory index file.
type Resolver struct {
	root       string
	extensions []string
}

func NewResolver(root string, extensions []string) *Resolver {
	return &Resolver{root: root, extensions: extensions}
}

// Resolve searches the filesystem for the target of specifier, imported by
// fromFile (a path relative to the project root). On success it returns the
// corrected specifier, re-expressed relative to the importing directory. An
// empty specifier and a non-empty reason mean the anchor must be skipped.
func (r *Resolver) Resolve(fromFile, specifier string) (string, string) {
	if !strings.HasPrefix(specifier, ".") {
		return "", types.SkipNonRelative
	}

	base := filepath.Join(r.root, filepath.Dir(fromFile))
	target := filepath.Join(base, filepath.FromSlash(specifier))

	resolved := firstExisting(r.candidates(target))
	if resolved == "" {
		// Plural-stem fallback: a specifier that names the singular of an
		// existing sibling (./util for utils.ts) is a common drift after
		// file renames. Probed only after every exact candidate missed.
		resolved = firstExisting(r.pluralCandidates(target))
	}
	if resolved == "" {
		return "", types.SkipTargetNotFound
	}

	rel, err := filepath.Rel(base, resolved)
	if err != nil {
		return "", types.SkipTargetNotFound
	}

	spec := filepath.ToSlash(rel)
	for _, ext := range r.extensions {
		if strings.HasSuffix(spec, ext) {
			spec = strings.TrimSuffix(spec, ext)
			break
		}
	}
	spec = strings.TrimSuffix(spec, "/index")
	if !strings.HasPrefix(spec, ".") {
		spec = "./" + spec
	}

	return spec, ""
}

// candidates returns the probe paths for target, in priority order.
func (r *Resolver) candidates(target string) []string {
	paths := make([]string, 0, 2*len(r.extensions))
	for _, ext := range r.extensions {
		paths = append(paths, target+ext)
	}
	for _, ext := range r.extensions {
		paths = append(paths, filepath.Join(target, "index"+ext))
	}
	return paths
}

func (r *Resolver) pluralCandidates(target string) []string {
	paths := make([]string, 0, len(r.extensions))
	for _, ext := range r.extensions {
		paths = append(paths, target+"s"+ext)
	}
	return paths
}

func firstExisting(paths []string) string {
	for _, path := range paths {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}
