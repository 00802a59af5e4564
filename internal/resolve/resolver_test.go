package resolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agusespa/tsmend/internal/types"
)

func writeFile(t *testing.T, root string, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("export {};\n"), 0644))
}

func newTestResolver(root string) *Resolver {
	return NewResolver(root, []string{".ts", ".tsx"})
}

func TestResolver_NonRelativeSkipped(t *testing.T) {
	r := newTestResolver(t.TempDir())

	spec, reason := r.Resolve("src/a.ts", "@forge/ui")
	assert.Empty(t, spec)
	assert.Equal(t, types.SkipNonRelative, reason)
}

func TestResolver_TargetNotFound(t *testing.T) {
	r := newTestResolver(t.TempDir())

	spec, reason := r.Resolve("src/a.ts", "./nowhere")
	assert.Empty(t, spec)
	assert.Equal(t, types.SkipTargetNotFound, reason)
}

func TestResolver_ProbeOrder(t *testing.T) {
	// Probe order is always ext A, ext B, index A, index B.
	r := newTestResolver("/project")

	got := r.candidates(filepath.Join("/project", "src", "helper"))
	want := []string{
		filepath.Join("/project", "src", "helper.ts"),
		filepath.Join("/project", "src", "helper.tsx"),
		filepath.Join("/project", "src", "helper", "index.ts"),
		filepath.Join("/project", "src", "helper", "index.tsx"),
	}
	assert.Equal(t, want, got)
}

func TestResolver_FileBeatsDirectoryIndex(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/panel.tsx")
	writeFile(t, root, "src/panel/index.ts")

	r := newTestResolver(root)
	spec, reason := r.Resolve("src/a.ts", "./panel")
	assert.Empty(t, reason)
	assert.Equal(t, "./panel", spec)
}

func TestResolver_DirectoryIndexElided(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/widgets/index.tsx")

	r := newTestResolver(root)
	spec, reason := r.Resolve("src/a.ts", "./widgets")
	assert.Empty(t, reason)
	// The trailing index segment never appears in the rewritten specifier.
	assert.Equal(t, "./widgets", spec)
}

func TestResolver_ParentDirectorySpecifier(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/shared/api.ts")
	writeFile(t, root, "src/app/a.ts")

	r := newTestResolver(root)
	spec, reason := r.Resolve("src/app/a.ts", "../shared/api")
	assert.Empty(t, reason)
	assert.Equal(t, "../shared/api", spec)
}

func TestResolver_PluralStemFallback(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/utils.ts")

	r := newTestResolver(root)
	spec, reason := r.Resolve("src/a.ts", "./util")
	assert.Empty(t, reason)
	assert.Equal(t, "./utils", spec)
}

func TestResolver_ExactMatchBeatsPluralFallback(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/util.ts")
	writeFile(t, root, "src/utils.ts")

	r := newTestResolver(root)
	spec, reason := r.Resolve("src/a.ts", "./util")
	assert.Empty(t, reason)
	assert.Equal(t, "./util", spec)
}

func TestResolver_Deterministic(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/helper.ts")
	writeFile(t, root, "src/helper.tsx")

	r := newTestResolver(root)
	for i := 0; i < 5; i++ {
		spec, reason := r.Resolve("src/a.ts", "./helper")
		assert.Empty(t, reason)
		assert.Equal(t, "./helper", spec)
	}
}
