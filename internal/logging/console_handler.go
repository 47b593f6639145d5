package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// ConsoleHandler is a slog.Handler that renders records in the line format
// used both on the console and in session log files:
//
//	(<pid>) <LEVEL> <emitter-name>: <message> key=value ...
//
// Its destination is swappable at runtime so the session recorder can
// reroute an emitter into the capture writer and restore it later.
type ConsoleHandler struct {
	opts  slog.HandlerOptions
	name  string
	mu    sync.Mutex
	out   io.Writer
	attrs []slog.Attr
}

// NewConsoleHandler creates a ConsoleHandler writing to out for the emitter
// with the given name.
func NewConsoleHandler(out io.Writer, name string, opts *slog.HandlerOptions) *ConsoleHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &ConsoleHandler{
		out:  out,
		name: name,
		opts: *opts,
	}
}

// SetOutput atomically replaces the handler's destination.
func (h *ConsoleHandler) SetOutput(w io.Writer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.out = w
}

// Output returns the handler's current destination.
func (h *ConsoleHandler) Output() io.Writer {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.out
}

// Enabled reports whether the handler is enabled for this level.
func (h *ConsoleHandler) Enabled(ctx context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle renders the record as a single line.
func (h *ConsoleHandler) Handle(ctx context.Context, r slog.Record) error {
	buf := make([]byte, 0, 256)

	buf = fmt.Appendf(buf, "(%d) %-5s %s: %s",
		os.Getpid(), strings.ToUpper(r.Level.String()), h.name, r.Message)

	for _, a := range h.attrs {
		buf = append(buf, ' ')
		buf = appendAttr(buf, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		buf = append(buf, ' ')
		buf = appendAttr(buf, a)
		return true
	})

	buf = append(buf, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf)
	return err
}

func appendAttr(buf []byte, a slog.Attr) []byte {
	buf = append(buf, a.Key...)
	buf = append(buf, '=')
	val := a.Value.String()
	if strings.ContainsAny(val, " \t\n") {
		buf = append(buf, '"')
		buf = append(buf, val...)
		buf = append(buf, '"')
	} else {
		buf = append(buf, val...)
	}
	return buf
}

// WithAttrs returns a handler that prepends the given attributes to every
// record. The derived handler captures the receiver's destination at
// derivation time; derive before a capture session starts or use the parent
// emitter directly.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h.mu.Lock()
	defer h.mu.Unlock()
	return &ConsoleHandler{
		opts:  h.opts,
		name:  h.name,
		out:   h.out,
		attrs: append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

// WithGroup is a no-op for the flat console format.
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	return h
}
