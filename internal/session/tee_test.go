package session

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct {
	err error
}

func (f *failingWriter) Write(p []byte) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return len(p), nil
}

func TestTeeWritesConsoleThenFile(t *testing.T) {
	var console, file bytes.Buffer
	tee := NewTeeWriter(&console, &file)

	n, err := tee.Write([]byte("Configuring NTP...\n"))
	require.NoError(t, err)
	assert.Equal(t, 19, n)
	assert.Equal(t, "Configuring NTP...\n", console.String())
	assert.Equal(t, "Configuring NTP...\n", file.String())
}

func TestTeeConsoleFailureIsReturned(t *testing.T) {
	var file bytes.Buffer
	wantErr := errors.New("broken pipe")
	tee := NewTeeWriter(&failingWriter{err: wantErr}, &file)

	_, err := tee.Write([]byte("lost"))
	assert.ErrorIs(t, err, wantErr)
	// The console is the primary destination; nothing is logged when it
	// rejects the write.
	assert.Empty(t, file.String())
}

func TestTeeFileFailureWarnsOnce(t *testing.T) {
	var console bytes.Buffer
	tee := NewTeeWriter(&console, &failingWriter{err: errors.New("disk full")})

	for i := 0; i < 3; i++ {
		_, err := tee.Write([]byte("line\n"))
		require.NoError(t, err)
	}

	out := console.String()
	assert.Equal(t, 1, bytes.Count([]byte(out), []byte("[WARNING] Failed to write to log file")))
	assert.Contains(t, out, "disk full")
	assert.Equal(t, 3, bytes.Count([]byte(out), []byte("line\n")))
}

func TestTeePreservesWriteOrder(t *testing.T) {
	var console, file bytes.Buffer
	tee := NewTeeWriter(&console, &file)

	for _, chunk := range []string{"a", "b", "c"} {
		_, err := tee.Write([]byte(chunk))
		require.NoError(t, err)
	}
	assert.Equal(t, "abc", console.String())
	assert.Equal(t, "abc", file.String())
}
