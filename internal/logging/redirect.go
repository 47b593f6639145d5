package logging

import (
	"io"
	"os"
)

type binding struct {
	handler *ConsoleHandler
	prev    io.Writer
}

// Redirector reroutes registered emitters into a capture writer and undoes
// the rerouting on Restore. The emitter set is a snapshot taken at Redirect
// time: emitters created afterward keep their original destination and are
// not captured. That keeps the redirection scope tight for the one-shot
// commands this tool runs.
type Redirector struct {
	bindings []binding
	restored bool
}

// Redirect points every currently registered emitter whose destination is a
// plain OS stream at w, recording the previous destination of each.
// Emitters already writing somewhere else (a file sink, a test buffer
// installed by the caller) are left alone.
func Redirect(w io.Writer) *Redirector {
	r := &Redirector{}
	for _, em := range Emitters() {
		h := em.Handler()
		prev := h.Output()
		if _, ok := prev.(*os.File); !ok {
			continue
		}
		r.bindings = append(r.bindings, binding{handler: h, prev: prev})
		h.SetOutput(w)
	}
	return r
}

// Restore reinstalls every recorded destination. It is idempotent; a second
// call is a no-op. Each binding is restored independently so one bad
// handler cannot block the rest of teardown.
func (r *Redirector) Restore() {
	if r == nil || r.restored {
		return
	}
	r.restored = true
	for _, b := range r.bindings {
		b.handler.SetOutput(b.prev)
	}
}

// Count returns the number of emitters captured by this redirector.
func (r *Redirector) Count() int {
	return len(r.bindings)
}
