package observability_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/planforge/internal/observability"
)

func TestLoggerFromContextCarriesIDs(t *testing.T) {
	var buf bytes.Buffer
	observability.Init(&buf, "debug")
	t.Cleanup(func() { observability.Init(os.Stdout, "info") })

	ctx := observability.WithRequestID(context.Background(), "req-1")
	ctx = observability.WithProject(ctx, "proj-1", "user-1")
	observability.LoggerFromContext(ctx).Info("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "proj-1", line["project_id"])
	assert.Equal(t, "user-1", line["user_id"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, observability.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, observability.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, observability.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, observability.ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, observability.ParseLevel("verbose"))
}
