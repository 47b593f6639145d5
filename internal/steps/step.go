// Package steps contains the SNAC hardening steps. Each step knows how to
// bring its slice of the system into the locked-down configuration and how
// to verify that configuration later.
package steps

import (
	"github.com/ni/nilrt-snac/internal/config"
	"github.com/ni/nilrt-snac/internal/opkg"
	"github.com/ni/nilrt-snac/internal/system"
)

// Context carries the shared dependencies handed to every step.
type Context struct {
	Cfg    *config.Config
	Opkg   *opkg.Helper
	Exec   system.CommandExecutor
	Sys    system.Controller
	DryRun bool
}

// Step is one hardening unit. Configure mutates the system toward the SNAC
// state; Verify reports whether the system matches it, logging each
// discrepancy as an error.
type Step interface {
	Name() string
	Configure(ctx *Context) error
	Verify(ctx *Context) bool
}

// All returns every step in configuration order. Order matters: the
// WireGuard link must exist before the firewall binds a zone to it, and
// auditd reshapes /var/log permissions after every other step has written
// its logs.
func All() []Step {
	return []Step{
		&NTPStep{},
		&OpkgFeedsStep{},
		NewWireGuardStep(),
		&CryptsetupStep{},
		NewNIAuthStep(),
		NewWifiStep(),
		&FaillockStep{},
		&GraphicalStep{},
		&ConsoleOutStep{},
		&SysAPIStep{},
		NewTmuxStep(),
		&PWQualityStep{},
		NewSSHStep(),
		NewSudoStep(),
		&FirewallStep{},
		NewAuditdStep(),
		NewSyslogStep(),
	}
}
