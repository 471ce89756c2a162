package gen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bushrat011899/crossfig/pkg/crossfig"
	"github.com/bushrat011899/crossfig/pkg/crossfig/manifest"
)

func resolveTestManifest(t *testing.T) *Result {
	res, err := NewResolver().Resolve(context.Background(), testManifest(), "test.yaml")
	require.NoError(t, err)
	return res
}

func TestRender_Aliases(t *testing.T) {
	res := resolveTestManifest(t)

	files, err := Render(res)
	require.NoError(t, err)

	src := string(files[AliasesFile])
	require.NotEmpty(t, src)

	assert.Contains(t, src, "// Code generated by crossfig. DO NOT EDIT.")
	assert.Contains(t, src, "package transport")

	// pub alias becomes an exported constant with its doc attached.
	assert.Contains(t, src, "// Standard library available.")
	assert.Contains(t, src, "const Std = true")
	// private aliases stay unexported.
	assert.Contains(t, src, "const log = true")
	assert.Contains(t, src, "const quiet = false")
	// the resolved condition is recorded for consumers.
	assert.Contains(t, src, "Resolved from `cfg(feature=std)`; enabled in this build.")
}

func TestRender_SwitchExclusivity(t *testing.T) {
	res := resolveTestManifest(t)

	files, err := Render(res)
	require.NoError(t, err)

	src := string(files["zz_generated_logging.go"])
	require.NotEmpty(t, src)

	// Only the selected arm's block appears.
	assert.Contains(t, src, "println(1)")
	assert.NotContains(t, src, "println(2)")
	assert.NotContains(t, src, "func logf() {}")
}

// TestRender_DiscardedBlockNeverParsed: an unselected arm may hold text
// that could never compile without affecting rendering.
func TestRender_DiscardedBlockNeverParsed(t *testing.T) {
	m := testManifest()
	m.Switches[0].Arms[1].Block = "((( this is not go )))"

	res, err := NewResolver().Resolve(context.Background(), m, "t")
	require.NoError(t, err)

	files, err := Render(res)
	require.NoError(t, err)
	assert.NotContains(t, string(files["zz_generated_logging.go"]), "not go")
}

// TestRender_SelectedBlockMustBeGo: the selected block is the one block
// that does get compiled, so it must parse.
func TestRender_SelectedBlockMustBeGo(t *testing.T) {
	m := testManifest()
	m.Switches[0].Arms[0].Block = "((( this is not go )))"

	res, err := NewResolver().Resolve(context.Background(), m, "t")
	require.NoError(t, err)

	_, err = Render(res)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid Go")
}

func TestRender_VarExpansion(t *testing.T) {
	m := testManifest()
	m.Vars = map[string]string{"fn": "logf"}
	m.Switches[0].Arms[0].Block = "// impl for ${package}\nfunc ${fn}() { println(1) }"

	res, err := NewResolver().Resolve(context.Background(), m, "t")
	require.NoError(t, err)

	files, err := Render(res)
	require.NoError(t, err)

	src := string(files["zz_generated_logging.go"])
	assert.Contains(t, src, "impl for transport")
	assert.Contains(t, src, "func logf()")
}

func TestRender_MissingVar(t *testing.T) {
	m := testManifest()
	m.Switches[0].Arms[0].Block = "func ${nope}() {}"

	res, err := NewResolver().Resolve(context.Background(), m, "t")
	require.NoError(t, err)

	_, err = Render(res)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undefined block vars: nope")
}

func TestRender_NoAliases_NoAliasFile(t *testing.T) {
	m := testManifest()
	m.Aliases = nil
	m.Switches[0].Arms = m.Switches[0].Arms[2:] // default only
	m.Switches[0].Arms[0].Default = true

	res, err := NewResolver().Resolve(context.Background(), m, "t")
	require.NoError(t, err)

	files, err := Render(res)
	require.NoError(t, err)
	_, ok := files[AliasesFile]
	assert.False(t, ok)
}

// TestRender_ConstNameCollision: distinct alias names can fold to the
// same constant name, which would leave a duplicate const declaration
// in the generated file.
func TestRender_ConstNameCollision(t *testing.T) {
	m := testManifest()
	m.Aliases = append(m.Aliases,
		manifest.Alias{Name: "fast_math", Cond: "enabled"},
		manifest.Alias{Name: "fast-math", Cond: "enabled"},
	)

	res, err := NewResolver().Resolve(context.Background(), m, "t")
	require.NoError(t, err)

	_, err = Render(res)
	require.Error(t, err)
	assert.ErrorIs(t, err, crossfig.ErrNameCollision)
	assert.Contains(t, err.Error(), `both render to constant "fastMath"`)
}

func TestConstName(t *testing.T) {
	tests := []struct {
		in       string
		exported bool
		want     string
	}{
		{"std", true, "Std"},
		{"std", false, "std"},
		{"fast_math", true, "FastMath"},
		{"fast_math", false, "fastMath"},
		{"multi_threading", true, "MultiThreading"},
		{"a", false, "a"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, constName(tt.in, tt.exported), "constName(%q, %v)", tt.in, tt.exported)
	}
}

func TestWrite(t *testing.T) {
	res := resolveTestManifest(t)
	files, err := Render(res)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "generated")
	require.NoError(t, Write(dir, files))

	for name, want := range files {
		got, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}
