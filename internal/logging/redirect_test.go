package logging

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedirectCapturesOSStreamEmitters(t *testing.T) {
	l := New("snac.test-redirect")
	require.IsType(t, &os.File{}, l.Handler().Output())

	var capture bytes.Buffer
	r := Redirect(&capture)
	defer r.Restore()

	assert.GreaterOrEqual(t, r.Count(), 1)
	l.Error("captured line")
	assert.Contains(t, capture.String(), "snac.test-redirect: captured line")

	r.Restore()
	assert.Equal(t, os.Stderr, l.Handler().Output())
}

func TestRedirectSkipsNonFileDestinations(t *testing.T) {
	l := New("snac.test-skip")
	var own bytes.Buffer
	l.Handler().SetOutput(&own)

	var capture bytes.Buffer
	r := Redirect(&capture)
	defer r.Restore()

	l.Error("stays put")
	assert.Contains(t, own.String(), "stays put")
	assert.NotContains(t, capture.String(), "stays put")
}

func TestRedirectIsASnapshot(t *testing.T) {
	var capture bytes.Buffer
	r := Redirect(&capture)
	defer r.Restore()

	// An emitter created after the redirection keeps its own destination.
	late := New("snac.test-late")
	assert.Equal(t, os.Stderr, late.Handler().Output())

	late.Error("late line")
	assert.NotContains(t, capture.String(), "late line")
}

func TestRestoreIsIdempotent(t *testing.T) {
	l := New("snac.test-idempotent")
	var capture bytes.Buffer
	r := Redirect(&capture)

	r.Restore()
	// Retarget the handler, then restore again; the second call must not
	// clobber the new destination.
	var own bytes.Buffer
	l.Handler().SetOutput(&own)
	r.Restore()
	assert.Equal(t, &own, l.Handler().Output())

	l.Handler().SetOutput(os.Stderr)
}

func TestRestoreOnNil(t *testing.T) {
	var r *Redirector
	assert.NotPanics(t, func() { r.Restore() })
}
