package steps

import (
	"strings"

	"github.com/ni/nilrt-snac/internal/console"
	"github.com/ni/nilrt-snac/internal/logging"
)

var consoleLog = logging.New("snac.console")

// ConsoleOutStep disables local console output via nirtcfg.
type ConsoleOutStep struct{}

func (s *ConsoleOutStep) Name() string { return "console" }

func (s *ConsoleOutStep) Configure(ctx *Context) error {
	console.Println("Configuring console access...")
	if ctx.DryRun {
		return nil
	}
	consoleLog.Debug("Disabling console access")
	return ctx.Exec.Run("nirtcfg", "--set", "section=systemsettings,token=consoleout.enabled,value=False")
}

func (s *ConsoleOutStep) Verify(ctx *Context) bool {
	console.Println("Verifying console access configuration...")
	out, err := ctx.Exec.Output("nirtcfg", "--get", "section=systemsettings,token=consoleout.enabled")
	if err != nil {
		consoleLog.Errorf("Failed to query console access setting: %v", err)
		return false
	}
	if strings.TrimSpace(out) != "False" {
		consoleLog.Error("FOUND: console access not disabled")
		return false
	}
	return true
}
