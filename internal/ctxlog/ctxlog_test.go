package ctxlog

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))

	logger := New("info", "text", &bytes.Buffer{})
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
}

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
		wantWarn  bool
	}{
		{"debug", true, true, true},
		{"info", false, true, true},
		{"warn", false, false, true},
		{"error", false, false, false},
		{"bogus", false, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l := New(tt.level, "text", &bytes.Buffer{})
			ctx := context.Background()
			assert.Equal(t, tt.wantDebug, l.Enabled(ctx, slog.LevelDebug))
			assert.Equal(t, tt.wantInfo, l.Enabled(ctx, slog.LevelInfo))
			assert.Equal(t, tt.wantWarn, l.Enabled(ctx, slog.LevelWarn))
		})
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	New("info", "json", &buf).Info("generated", "component", "SCC68070_PLCC84")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "generated", rec["msg"])
	assert.Equal(t, "SCC68070_PLCC84", rec["component"])
}
