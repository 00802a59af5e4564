package tools

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// ShimScanner inspects declaration-shim files with the TypeScript grammar.
// Its single job is finding the `declare module` statements a valid shim
// must consist of.
type ShimScanner struct {
	parser   *sitter.Parser
	language *sitter.Language
}

func NewShimScanner() (*ShimScanner, error) {
	lang := sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	parser := sitter.NewParser()
	if err := parser.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("failed to set language for parser: %w", err)
	}
	return &ShimScanner{
		parser:   parser,
		language: lang,
	}, nil
}

// ModuleDeclarations returns the names of the `declare module` statements
// in content, in source order.
func (s *ShimScanner) ModuleDeclarations(content string) ([]string, error) {
	src := []byte(content)
	tree := s.parser.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse shim: tree-sitter returned nil")
	}
	defer tree.Close()

	var names []string

	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		if node.Kind() == "module" && node.Parent() != nil && node.Parent().Kind() == "ambient_declaration" {
			name := ""
			if nameNode := node.ChildByFieldName("name"); nameNode != nil {
				name = strings.Trim(nameNode.Utf8Text(src), `"'`)
			}
			names = append(names, name)
		}
		for i := uint(0); i < node.ChildCount(); i++ {
			if child := node.Child(i); child != nil {
				walk(child)
			}
		}
	}
	walk(tree.RootNode())

	return names, nil
}

// FindShimFiles lists every .d.ts file under the source subtree, with paths
// relative to root, sorted.
func FindShimFiles(root, srcDir string) ([]string, error) {
	var shims []string

	base := filepath.Join(root, srcDir)
	if _, err := os.Stat(base); os.IsNotExist(err) {
		return nil, nil
	}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".d.ts") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		shims = append(shims, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s for shim files: %w", base, err)
	}

	sort.Strings(shims)
	return shims, nil
}
