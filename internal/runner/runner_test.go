package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agusespa/tsmend/internal/diagnostics"
	"github.com/agusespa/tsmend/internal/tools"
)

func TestRunner_Run(t *testing.T) {
	checker := &tools.TypeCheckTool{
		Root: t.TempDir(),
		Command: []string{"sh", "-c",
			`echo "src/a.ts(3,1): error TS2578: Unused '@ts-expect-error' directive."; exit 1`},
	}

	r := New(checker, diagnostics.NewParser())
	output, diags, err := r.Run()
	require.NoError(t, err)

	assert.Contains(t, output, "error TS2578")
	require.Len(t, diags, 1)
	assert.Equal(t, "src/a.ts", diags[0].File)
	assert.Equal(t, 3, diags[0].Line)
	assert.Equal(t, "TS2578", diags[0].Code)
}

func TestRunner_CleanTree(t *testing.T) {
	checker := &tools.TypeCheckTool{
		Root:    t.TempDir(),
		Command: []string{"sh", "-c", "echo 'no problems found'"},
	}

	r := New(checker, diagnostics.NewParser())
	output, diags, err := r.Run()
	require.NoError(t, err)
	assert.Contains(t, output, "no problems found")
	assert.Empty(t, diags)
}

func TestRunner_InvocationFailure(t *testing.T) {
	checker := &tools.TypeCheckTool{
		Root:    t.TempDir(),
		Command: []string{"definitely-not-a-real-checker-binary"},
	}

	r := New(checker, diagnostics.NewParser())
	_, _, err := r.Run()
	assert.Error(t, err)
}
