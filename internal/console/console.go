// Package console owns the process-wide console destinations.
//
// All user-facing output and all subprocess stdout/stderr are funneled
// through Stdout and Stderr so that the session recorder can swap both for
// capturing writers and restore them afterward. The tool is single-threaded
// during a command run; only the active session recorder mutates the
// bindings.
package console

import (
	"fmt"
	"io"
	"os"
)

var (
	// Stdout is the destination for normal output.
	Stdout io.Writer = os.Stdout
	// Stderr is the destination for diagnostic output.
	Stderr io.Writer = os.Stderr
)

// Bind replaces both console destinations and returns the previous pair so
// the caller can restore them.
func Bind(out, errw io.Writer) (prevOut, prevErr io.Writer) {
	prevOut, prevErr = Stdout, Stderr
	Stdout, Stderr = out, errw
	return prevOut, prevErr
}

// Restore reinstalls a previously bound destination pair.
func Restore(out, errw io.Writer) {
	Stdout, Stderr = out, errw
}

// Printf writes formatted output to the current normal destination.
func Printf(format string, a ...any) {
	fmt.Fprintf(Stdout, format, a...)
}

// Println writes a line to the current normal destination.
func Println(a ...any) {
	fmt.Fprintln(Stdout, a...)
}
