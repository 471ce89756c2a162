package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bushrat011899/crossfig/pkg/crossfig"
)

const sampleYAML = `
package: transport
output: ./generated
vars:
  prefix: transport
build:
  features: [std, log]
  os: linux
  tags: [debug]
aliases:
  - name: std
    pub: true
    doc: The standard library is available.
    cond: cfg(feature=std)
  - name: verbose
    cond: all(std, cfg(feature=log))
switches:
  - name: logging
    arms:
      - cond: verbose
        block: "func logf() { println(\"on\") }"
      - default: true
        block: "func logf() {}"
`

func TestFromYAML(t *testing.T) {
	m, err := FromYAML([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "transport", m.Package)
	assert.Equal(t, "./generated", m.Output)
	assert.Equal(t, "transport", m.Vars["prefix"])
	assert.Equal(t, []string{"std", "log"}, m.Build.Features)
	assert.Equal(t, "linux", m.Build.OS)
	assert.Equal(t, []string{"debug"}, m.Build.Tags)

	require.Len(t, m.Aliases, 2)
	assert.Equal(t, "std", m.Aliases[0].Name)
	assert.True(t, m.Aliases[0].Pub)
	assert.Equal(t, "The standard library is available.", m.Aliases[0].Doc)

	require.Len(t, m.Switches, 1)
	require.Len(t, m.Switches[0].Arms, 2)
	assert.True(t, m.Switches[0].Arms[1].Default)
}

func TestFromJSON(t *testing.T) {
	data := []byte(`{
		"package": "p",
		"aliases": [{"name": "a", "cond": "enabled"}],
		"switches": [{
			"name": "s",
			"arms": [
				{"cond": "a", "block": "x"},
				{"default": true, "block": "y"}
			]
		}]
	}`)
	m, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, "p", m.Package)
	require.NoError(t, m.Validate())
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "crossfig.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(sampleYAML), 0o644))

	m, err := FromFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "transport", m.Package)

	_, err = FromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	badExt := filepath.Join(dir, "crossfig.toml")
	require.NoError(t, os.WriteFile(badExt, []byte(""), 0o644))
	_, err = FromFile(badExt)
	assert.ErrorContains(t, err, "unsupported manifest extension")
}

func TestValidate_OK(t *testing.T) {
	m, err := FromYAML([]byte(sampleYAML))
	require.NoError(t, err)
	assert.NoError(t, m.Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Manifest)
		check    func(t *testing.T, err error)
	}{
		{
			name:   "missing package",
			mutate: func(m *Manifest) { m.Package = "" },
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "package name is required")
			},
		},
		{
			name:   "unnamed alias",
			mutate: func(m *Manifest) { m.Aliases[0].Name = "" },
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "name is required")
			},
		},
		{
			name:   "duplicate alias",
			mutate: func(m *Manifest) { m.Aliases[1].Name = m.Aliases[0].Name },
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, crossfig.ErrNameCollision)
			},
		},
		{
			name:   "bad alias cond",
			mutate: func(m *Manifest) { m.Aliases[0].Cond = "any()" },
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "at least one operand")
			},
		},
		{
			name:   "no fallback",
			mutate: func(m *Manifest) { m.Switches[0].Arms = m.Switches[0].Arms[:1] },
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, crossfig.ErrNoFallback)
			},
		},
		{
			name: "zero arms",
			mutate: func(m *Manifest) {
				m.Switches[0].Arms = nil
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, crossfig.ErrNoFallback)
			},
		},
		{
			name: "non-terminal fallback",
			mutate: func(m *Manifest) {
				m.Switches[0].Arms[0], m.Switches[0].Arms[1] = m.Switches[0].Arms[1], m.Switches[0].Arms[0]
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, crossfig.ErrArmAfterFallback)
			},
		},
		{
			name: "fallback with condition",
			mutate: func(m *Manifest) {
				m.Switches[0].Arms[1].Cond = "std"
			},
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "fallback arm cannot have a condition")
			},
		},
		{
			name: "arm without condition",
			mutate: func(m *Manifest) {
				m.Switches[0].Arms[0].Cond = ""
			},
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "cond is required")
			},
		},
		{
			name: "shared output file",
			mutate: func(m *Manifest) {
				m.Switches[0].File = "zz_shared.go"
				second := m.Switches[0]
				second.Name = "tracing"
				m.Switches = append(m.Switches, second)
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, crossfig.ErrNameCollision)
				assert.ErrorContains(t, err, `output file "zz_shared.go" already used by switch "logging"`)
			},
		},
		{
			name: "output file reserved for aliases",
			mutate: func(m *Manifest) {
				m.Switches[0].File = AliasesFile
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, crossfig.ErrNameCollision)
				assert.ErrorContains(t, err, "reserved for the alias constants")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := FromYAML([]byte(sampleYAML))
			require.NoError(t, err)
			tt.mutate(&m)
			err = m.Validate()
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestSwitch_OutputFile(t *testing.T) {
	assert.Equal(t, "zz_generated_logging.go", Switch{Name: "logging"}.OutputFile())
	assert.Equal(t, "custom.go", Switch{Name: "logging", File: "custom.go"}.OutputFile())
}
