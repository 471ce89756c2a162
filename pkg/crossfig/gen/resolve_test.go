package gen

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bushrat011899/crossfig/pkg/crossfig"
	"github.com/bushrat011899/crossfig/pkg/crossfig/manifest"
)

func testManifest() manifest.Manifest {
	return manifest.Manifest{
		Package: "transport",
		Build: manifest.Build{
			Features: []string{"std", "log"},
		},
		Aliases: []manifest.Alias{
			{Name: "std", Pub: true, Doc: "Standard library available.", Cond: "cfg(feature=std)"},
			{Name: "log", Cond: "cfg(feature=log)"},
			{Name: "quiet", Cond: "all(std, not(log))"},
		},
		Switches: []manifest.Switch{
			{
				Name: "logging",
				Arms: []manifest.Arm{
					{Cond: "log", Block: "func logf() { println(1) }"},
					{Cond: "std", Block: "func logf() { println(2) }"},
					{Default: true, Block: "func logf() {}"},
				},
			},
		},
	}
}

func TestResolver_Resolve(t *testing.T) {
	res, err := NewResolver().Resolve(context.Background(), testManifest(), "test.yaml")
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, "test.yaml", res.Manifest)
	assert.Equal(t, "transport", res.Package)

	require.Len(t, res.Aliases, 3)
	assert.Equal(t, "std", res.Aliases[0].Name())
	assert.True(t, res.Aliases[0].Bool())
	assert.Equal(t, "cfg(feature=std)", res.Aliases[0].Cond)
	assert.True(t, res.Aliases[1].Bool())
	// all(std, not(log)) with both features on.
	assert.False(t, res.Aliases[2].Bool())

	require.Len(t, res.Selections, 1)
	sel := res.Selections[0]
	assert.Equal(t, 0, sel.Arm)
	assert.False(t, sel.Fallback)
	assert.Equal(t, "func logf() { println(1) }", sel.Block)
	assert.Equal(t, "zz_generated_logging.go", sel.File)
}

func TestResolver_Resolve_FallbackWhenNothingMatches(t *testing.T) {
	m := testManifest()
	m.Build.Features = nil

	res, err := NewResolver().Resolve(context.Background(), m, "test.yaml")
	require.NoError(t, err)

	for _, a := range res.Aliases {
		assert.False(t, a.Bool(), "alias %s", a.Name())
	}
	require.Len(t, res.Selections, 1)
	assert.True(t, res.Selections[0].Fallback)
	assert.Equal(t, "func logf() {}", res.Selections[0].Block)
}

// TestResolver_Resolve_SharedOutputFile: two switches writing the same
// file would leave only the later one's block on disk, so resolution
// must refuse up front.
func TestResolver_Resolve_SharedOutputFile(t *testing.T) {
	m := testManifest()
	second := m.Switches[0]
	second.Name = "tracing"
	second.File = m.Switches[0].OutputFile()
	m.Switches = append(m.Switches, second)

	_, err := NewResolver().Resolve(context.Background(), m, "t")
	require.Error(t, err)
	assert.ErrorIs(t, err, crossfig.ErrNameCollision)
	assert.Contains(t, err.Error(), `already used by switch "logging"`)
}

func TestResolver_Resolve_WithEnvOverride(t *testing.T) {
	env := crossfig.EnvFunc(func(term string) (bool, error) {
		return term == "feature=log", nil
	})
	res, err := NewResolver(WithEnv(env)).Resolve(context.Background(), testManifest(), "t")
	require.NoError(t, err)
	assert.False(t, res.Aliases[0].Bool())
	assert.True(t, res.Aliases[1].Bool())
}

func TestResolver_Resolve_WithRunID(t *testing.T) {
	res, err := NewResolver(WithRunID("run-42")).Resolve(context.Background(), testManifest(), "t")
	require.NoError(t, err)
	assert.Equal(t, "run-42", res.RunID)
}

func TestResolver_Resolve_InvalidManifest(t *testing.T) {
	m := testManifest()
	m.Switches[0].Arms = m.Switches[0].Arms[:2] // drop the fallback

	_, err := NewResolver().Resolve(context.Background(), m, "t")
	assert.ErrorIs(t, err, crossfig.ErrNoFallback)
}

func TestResolver_Resolve_UndeclaredReference(t *testing.T) {
	m := testManifest()
	m.Aliases[0].Cond = "missing_alias"

	_, err := NewResolver().Resolve(context.Background(), m, "t")
	assert.ErrorIs(t, err, crossfig.ErrUnresolvedRef)
}

func TestResolver_Resolve_ForwardReference(t *testing.T) {
	m := testManifest()
	// "std" references "quiet", declared two entries later.
	m.Aliases[0].Cond = "quiet"

	_, err := NewResolver().Resolve(context.Background(), m, "t")
	assert.ErrorIs(t, err, crossfig.ErrUnresolvedRef)
}

func TestResolver_Resolve_Logs(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := NewResolver(WithLogger(logger)).Resolve(context.Background(), testManifest(), "t")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "resolution starting")
	assert.Contains(t, out, "alias resolved")
	assert.Contains(t, out, "switch resolved")
	assert.Contains(t, out, "resolution completed")
}
