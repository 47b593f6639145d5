package system

import (
	"strings"

	"github.com/ni/nilrt-snac/internal/console"
)

// DryRunExecutor records state-changing commands instead of running them.
// Read-only queries are delegated so dry-run output still reflects the real
// system.
type DryRunExecutor struct {
	// Commands collects every command that would have been run.
	Commands []string

	// Query handles Output calls. When nil, queries return empty output.
	Query CommandExecutor
}

// NewDryRunExecutor returns a DryRunExecutor delegating queries to the real
// executor.
func NewDryRunExecutor() *DryRunExecutor {
	return &DryRunExecutor{Query: &RealCommandExecutor{}}
}

// Run records the command and prints what would have been done.
func (d *DryRunExecutor) Run(name string, arg ...string) error {
	cmdline := name + " " + strings.Join(arg, " ")
	d.Commands = append(d.Commands, cmdline)
	console.Printf("dry-run: %s\n", cmdline)
	return nil
}

// Output delegates to the query executor.
func (d *DryRunExecutor) Output(name string, arg ...string) (string, error) {
	if d.Query == nil {
		return "", nil
	}
	return d.Query.Output(name, arg...)
}
