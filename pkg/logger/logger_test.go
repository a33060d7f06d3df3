package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal(line, &m))
		out = append(out, m)
	}
	return out
}

func TestGetLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARNING", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, getLogLevel(tt.in), tt.in)
	}
}

func TestLogReservationCreated(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "info", true)

	l.LogReservationCreated(context.Background(), "r1", "rest1", "u1", 42000)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "Reservation Created", lines[0]["msg"])
	assert.Equal(t, "r1", lines[0]["reservation_id"])
	assert.Equal(t, float64(42000), lines[0]["total_amount"])
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "info", true).WithComponent("monitor")
	l.Info("tick")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "monitor", lines[0]["component"])
}

func TestGormLogger_Trace(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "debug", true)
	g := NewGormLogger(l, gormlogger.Warn, 50*time.Millisecond)
	ctx := context.Background()
	sql := func() (string, int64) { return "SELECT 1", 1 }

	// fast successful query at warn level is dropped
	g.Trace(ctx, time.Now(), sql, nil)
	assert.Zero(t, buf.Len())

	// not found is not an error
	g.Trace(ctx, time.Now(), sql, gorm.ErrRecordNotFound)
	assert.Zero(t, buf.Len())

	g.Trace(ctx, time.Now(), sql, errors.New("boom"))
	g.Trace(ctx, time.Now().Add(-time.Second), sql, nil)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "Database Query Error", lines[0]["msg"])
	assert.Equal(t, "Slow Database Query", lines[1]["msg"])
}

func TestGormLogger_Silent(t *testing.T) {
	var buf bytes.Buffer
	g := NewGormLogger(NewWithWriter(&buf, "debug", true), gormlogger.Info, 0).LogMode(gormlogger.Silent)
	g.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 0 }, errors.New("x"))
	assert.Zero(t, buf.Len())
}
