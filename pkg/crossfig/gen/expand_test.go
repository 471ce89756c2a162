package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandBlock(t *testing.T) {
	vars := map[string]string{"name": "logf", "pkg": "transport"}

	tests := []struct {
		name  string
		in    string
		want  string
		fails string
	}{
		{name: "no placeholders", in: "func f() {}", want: "func f() {}"},
		{name: "single", in: "func ${name}() {}", want: "func logf() {}"},
		{name: "repeated", in: "${pkg} ${pkg}", want: "transport transport"},
		{name: "adjacent text", in: "x${name}y", want: "xlogfy"},
		{name: "bare dollar untouched", in: "cost is $5", want: "cost is $5"},
		{name: "missing", in: "${missing}", fails: "undefined block vars: missing"},
		{name: "mixed missing", in: "${name} ${gone} ${also_gone}", fails: "gone, also_gone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandBlock(tt.in, vars)
			if tt.fails != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.fails)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandBlock_Empty(t *testing.T) {
	got, err := expandBlock("", nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
