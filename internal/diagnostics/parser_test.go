package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse(t *testing.T) {
	parser := NewParser()

	output := `> forge-app@1.0.0 type-check
> tsc --noEmit

src/app/index.ts(12,5): error TS2307: Cannot find module './util'
src/admin/panel.tsx(3,1): error TS2578: Unused '@ts-expect-error' directive.
some unrelated build noise
Found 2 errors.
`

	diags := parser.Parse(output)
	require.Len(t, diags, 2)

	assert.Equal(t, "src/app/index.ts", diags[0].File)
	assert.Equal(t, 12, diags[0].Line)
	assert.Equal(t, 5, diags[0].Column)
	assert.Equal(t, "TS2307", diags[0].Code)
	assert.Equal(t, "Cannot find module './util'", diags[0].Message)

	assert.Equal(t, "src/admin/panel.tsx", diags[1].File)
	assert.Equal(t, "TS2578", diags[1].Code)
}

func TestParser_Parse_TokenOnlyLines(t *testing.T) {
	parser := NewParser()

	// Lines that mention a recognized code but do not match the full
	// diagnostic shape are kept for reporting, without a file anchor.
	output := "summary: 3 occurrences of TS6133 in project\n"

	diags := parser.Parse(output)
	require.Len(t, diags, 1)
	assert.Empty(t, diags[0].File)
	assert.Equal(t, "TS6133", diags[0].Code)
	assert.Equal(t, "summary: 3 occurrences of TS6133 in project", diags[0].RawText)
}

func TestParser_Parse_OrderOfAppearance(t *testing.T) {
	parser := NewParser()

	output := "src/b.ts(2,1): error TS6133: 'x' is declared but its value is never read.\n" +
		"src/a.ts(1,1): error TS2578: Unused '@ts-expect-error' directive.\n"

	diags := parser.Parse(output)
	require.Len(t, diags, 2)
	assert.Equal(t, "src/b.ts", diags[0].File)
	assert.Equal(t, "src/a.ts", diags[1].File)
}

func TestParser_Parse_NoMatches(t *testing.T) {
	parser := NewParser()

	assert.Empty(t, parser.Parse(""))
	assert.Empty(t, parser.Parse("all clean\nnothing to see\n"))
}

func TestParser_Specifier(t *testing.T) {
	parser := NewParser()

	diags := parser.Parse("src/a.ts(1,10): error TS2307: Cannot find module './missing' or its corresponding type declarations.\n")
	require.Len(t, diags, 1)

	spec, ok := parser.Specifier(diags[0])
	require.True(t, ok)
	assert.Equal(t, "./missing", spec)

	other := parser.Parse("src/a.ts(2,1): error TS6133: 'y' is declared but its value is never read.\n")
	require.Len(t, other, 1)
	_, ok = parser.Specifier(other[0])
	assert.False(t, ok)
}
