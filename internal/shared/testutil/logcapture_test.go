package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogCapture(t *testing.T) {
	logger, capture := NewLogCapture(nil)

	component := logger.With(slog.String("component", "store"))
	component.Warn("session evicted", slog.String("session_id", "abc"))
	logger.Info("unrelated")

	record, ok := capture.Find("evicted")
	require.True(t, ok)
	assert.Equal(t, slog.LevelWarn, record.Level)
	assert.Equal(t, "store", record.Attrs["component"])
	assert.Equal(t, "abc", record.Attrs["session_id"])

	assert.Len(t, capture.Records(), 2)
	assert.Equal(t, 1, capture.CountLevel(slog.LevelInfo))

	_, ok = capture.Find("missing")
	assert.False(t, ok)
}
