package observability

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	handler := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), buf
}

func records(t *testing.T, buf *bytes.Buffer) []map[string]any {
	var out []map[string]any
	for _, line := range bytes.Split(buf.Bytes(), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal(line, &m))
		out = append(out, m)
	}
	return out
}

func TestEnrichLogger(t *testing.T) {
	logger, buf := newTestLogger()

	enriched := EnrichLogger(logger, "run-9", "crossfig.yaml")
	enriched.Info("resolving")

	recs := records(t, buf)
	require.Len(t, recs, 1)
	assert.Equal(t, "run-9", recs[0]["run_id"])
	assert.Equal(t, "crossfig.yaml", recs[0]["manifest"])

	assert.Nil(t, EnrichLogger(nil, "x", "y"))
}

func TestLogRunLifecycle(t *testing.T) {
	logger, buf := newTestLogger()

	LogRunStart(logger, "run-1", "m.yaml")
	LogRunComplete(logger, "run-1", 3.5, 2, 1)
	LogRunError(logger, "run-1", errors.New("boom"))

	recs := records(t, buf)
	require.Len(t, recs, 3)
	assert.Equal(t, "resolution starting", recs[0]["msg"])
	assert.Equal(t, "resolution completed", recs[1]["msg"])
	assert.Equal(t, float64(2), recs[1]["aliases"])
	assert.Equal(t, "resolution failed", recs[2]["msg"])
	assert.Equal(t, "boom", recs[2]["error"])
}

func TestLogDeclarations(t *testing.T) {
	logger, buf := newTestLogger()

	LogAliasResolved(logger, "std", true, true)
	LogSwitchResolved(logger, "logging", -1, true)

	recs := records(t, buf)
	require.Len(t, recs, 2)
	assert.Equal(t, "alias resolved", recs[0]["msg"])
	assert.Equal(t, true, recs[0]["enabled"])
	assert.Equal(t, "switch resolved", recs[1]["msg"])
	assert.Equal(t, true, recs[1]["fallback"])
}

// All log helpers are nil-safe.
func TestLogHelpers_NilLogger(t *testing.T) {
	LogRunStart(nil, "r", "m")
	LogRunComplete(nil, "r", 0, 0, 0)
	LogRunError(nil, "r", errors.New("x"))
	LogAliasResolved(nil, "a", false, false)
	LogSwitchResolved(nil, "s", 0, false)
}
