package steps

import (
	"regexp"

	"github.com/ni/nilrt-snac/internal/configfile"
	"github.com/ni/nilrt-snac/internal/console"
	"github.com/ni/nilrt-snac/internal/logging"
)

var ntpLog = logging.New("snac.ntp")

// NTPStep switches the target off the vendor NTP pool and onto the
// configured servers.
type NTPStep struct {
	// ConfPath overrides /etc/ntp.conf, for tests.
	ConfPath string
}

func (s *NTPStep) Name() string { return "ntp" }

func (s *NTPStep) confPath() string {
	if s.ConfPath != "" {
		return s.ConfPath
	}
	return "/etc/ntp.conf"
}

func (s *NTPStep) Configure(ctx *Context) error {
	console.Println("Configuring NTP...")
	cf := configfile.Load(s.confPath())

	if err := ctx.Opkg.Install("ntp", false); err != nil {
		return err
	}

	ntpLog.Debug("Switching ntp servers to US mil.")
	if cf.Contains(`natinst\.pool\.ntp\.org`) {
		cf.Update(`^.*natinst\.pool\.ntp\.org.*$`, "")
	}
	for _, server := range ctx.Cfg.NTP.Servers {
		line := "server " + server
		if !cf.Contains(regexpEscape(line)) {
			cf.Add(line + "\n")
		}
	}

	if err := cf.Save(ctx.DryRun); err != nil {
		return err
	}
	if !ctx.DryRun {
		ntpLog.Debug("Restarting ntp service")
		if err := ctx.Exec.Run("/etc/init.d/ntpd", "restart"); err != nil {
			ntpLog.Warnf("Failed to restart ntpd: %v", err)
		}
	}
	return nil
}

func (s *NTPStep) Verify(ctx *Context) bool {
	console.Println("Verifying NTP configuration...")
	cf := configfile.Load(s.confPath())
	valid := true
	if !ctx.Opkg.IsInstalled("ntp") {
		valid = false
		ntpLog.Error("MISSING: ntp not installed")
	}
	for _, server := range ctx.Cfg.NTP.Servers {
		if !cf.Contains(regexpEscape(server)) {
			valid = false
			ntpLog.Error("MISSING: designated ntp server and settings not found in config file")
		}
	}
	if cf.Contains(`natinst\.pool\.ntp\.org`) {
		valid = false
		ntpLog.Error("FOUND: NI ntp server in config file")
	}
	return valid
}

func regexpEscape(s string) string {
	return regexp.QuoteMeta(s)
}
