package logging

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(level slog.Level, msg string, attrs ...slog.Attr) slog.Record {
	r := slog.NewRecord(time.Now(), level, msg, 0)
	r.AddAttrs(attrs...)
	return r
}

func TestHandleLineFormat(t *testing.T) {
	var buf bytes.Buffer
	h := NewConsoleHandler(&buf, "snac.opkg", nil)

	require.NoError(t, h.Handle(context.Background(), record(slog.LevelInfo, "feeds updated")))

	want := fmt.Sprintf("(%d) INFO  snac.opkg: feeds updated\n", os.Getpid())
	assert.Equal(t, want, buf.String())
}

func TestHandleLevelPadding(t *testing.T) {
	var buf bytes.Buffer
	h := NewConsoleHandler(&buf, "snac", nil)

	require.NoError(t, h.Handle(context.Background(), record(slog.LevelError, "boom")))
	assert.Contains(t, buf.String(), fmt.Sprintf("(%d) ERROR snac: boom", os.Getpid()))
}

func TestHandleAttrQuoting(t *testing.T) {
	var buf bytes.Buffer
	h := NewConsoleHandler(&buf, "snac", nil)

	r := record(slog.LevelWarn, "saved",
		slog.String("path", "/etc/ntp.conf"),
		slog.String("reason", "has spaces"))
	require.NoError(t, h.Handle(context.Background(), r))

	assert.Contains(t, buf.String(), `path=/etc/ntp.conf reason="has spaces"`)
}

func TestSetOutputSwapsDestination(t *testing.T) {
	var first, second bytes.Buffer
	h := NewConsoleHandler(&first, "snac", nil)

	require.NoError(t, h.Handle(context.Background(), record(slog.LevelInfo, "one")))
	h.SetOutput(&second)
	require.NoError(t, h.Handle(context.Background(), record(slog.LevelInfo, "two")))

	assert.Contains(t, first.String(), "one")
	assert.NotContains(t, first.String(), "two")
	assert.Contains(t, second.String(), "two")
	assert.Equal(t, &second, h.Output())
}

func TestEnabledHonorsLevel(t *testing.T) {
	var lv slog.LevelVar
	h := NewConsoleHandler(&bytes.Buffer{}, "snac", &slog.HandlerOptions{Level: &lv})

	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	lv.Set(slog.LevelDebug)
	assert.True(t, h.Enabled(context.Background(), slog.LevelDebug))
}

func TestWithAttrsPrepends(t *testing.T) {
	var buf bytes.Buffer
	h := NewConsoleHandler(&buf, "snac", nil)
	derived := h.WithAttrs([]slog.Attr{slog.String("step", "ntp")})

	require.NoError(t, derived.Handle(context.Background(),
		record(slog.LevelInfo, "done", slog.Int("changed", 2))))

	assert.Contains(t, buf.String(), "done step=ntp changed=2")
}
