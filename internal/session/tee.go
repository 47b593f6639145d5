package session

import (
	"fmt"
	"io"
)

// TeeWriter is the single serialization point for all captured output. It
// forwards every write to the original console destination first, then
// appends the same bytes to the session log file.
//
// The console write is the primary contract: if it fails the error is
// returned to the caller. A log-file write failure is swallowed so a broken
// log can never derail the operation being observed; the first such failure
// prints a one-time warning on the console so the operator learns logging
// has degraded.
type TeeWriter struct {
	console io.Writer
	file    io.Writer
	warned  bool
}

// NewTeeWriter returns a TeeWriter forwarding to console and appending to
// file, in that order, on every write.
func NewTeeWriter(console, file io.Writer) *TeeWriter {
	return &TeeWriter{console: console, file: file}
}

// Write implements io.Writer. Ordering between callers is preserved
// exactly; there is no internal buffering or queueing.
func (t *TeeWriter) Write(p []byte) (int, error) {
	n, err := t.console.Write(p)
	if err != nil {
		return n, err
	}
	if _, ferr := t.file.Write(p); ferr != nil && !t.warned {
		t.warned = true
		fmt.Fprintf(t.console, "\n[WARNING] Failed to write to log file: %v\n", ferr)
	}
	return n, nil
}
