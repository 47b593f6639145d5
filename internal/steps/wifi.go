package steps

import (
	"github.com/ni/nilrt-snac/internal/configfile"
	"github.com/ni/nilrt-snac/internal/console"
	"github.com/ni/nilrt-snac/internal/logging"
)

var wifiLog = logging.New("snac.wifi")

// wifiBlacklist prevents the WiFi stack modules from loading. The blacklist
// keyword is not enough: blacklisted modules still load when another module
// depends on them, while a bogus install command blocks them and every
// dependent module.
const wifiBlacklist = `
# Do not allow WiFi connections
install cfg80211 /bin/true
install mac80211 /bin/true
`

// WifiStep disables the WiFi kernel modules.
type WifiStep struct {
	BlacklistPath string
}

// NewWifiStep returns the step with the standard modprobe.d path.
func NewWifiStep() *WifiStep {
	return &WifiStep{BlacklistPath: "/etc/modprobe.d/snac_blacklist.conf"}
}

func (s *WifiStep) Name() string { return "wifi" }

func (s *WifiStep) Configure(ctx *Context) error {
	console.Println("Configuring WiFi configuration...")
	cf := configfile.Load(s.BlacklistPath)

	if !cf.Contains("install cfg80211 /bin/true") {
		cf.Add(wifiBlacklist)
	}

	if err := cf.Save(ctx.DryRun); err != nil {
		return err
	}
	if !ctx.DryRun {
		wifiLog.Debug("Removing any WiFi modules in memory")
		// rmmod fails when the modules are not loaded; that is fine.
		_ = ctx.Exec.Run("rmmod", "cfg80211", "mac80211")
	}
	return nil
}

func (s *WifiStep) Verify(ctx *Context) bool {
	console.Println("Verifying WiFi configuration...")
	cf := configfile.Load(s.BlacklistPath)
	valid := true
	if !cf.Exists() {
		valid = false
		wifiLog.Errorf("MISSING: %s not found", s.BlacklistPath)
	}
	if !cf.Contains("install cfg80211 /bin/true") {
		valid = false
		wifiLog.Error("MISSING: commands to fail install of WiFi modules")
	}
	return valid
}
