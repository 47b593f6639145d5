package steps

import (
	"github.com/ni/nilrt-snac/internal/console"
	"github.com/ni/nilrt-snac/internal/logging"
)

var syslogLog = logging.New("snac.syslog")

// SyslogStep installs syslog-ng and enables persistent on-target logs.
type SyslogStep struct {
	ConfPath string
}

// NewSyslogStep returns the step with the standard syslog-ng path.
func NewSyslogStep() *SyslogStep {
	return &SyslogStep{ConfPath: "/etc/syslog-ng/syslog-ng.conf"}
}

func (s *SyslogStep) Name() string { return "syslog" }

func (s *SyslogStep) Configure(ctx *Context) error {
	console.Println("Configuring syslog-ng...")
	if ctx.DryRun {
		return nil
	}

	if !ctx.Opkg.IsInstalled("syslog-ng") {
		if err := ctx.Opkg.Install("syslog-ng", false); err != nil {
			return err
		}
	}

	if err := ctx.Exec.Run("nirtcfg", "--set",
		`section=SystemSettings,token=PersistentLogs.enabled,value="True"`); err != nil {
		return err
	}
	return ctx.Exec.Run("/etc/init.d/syslog", "restart")
}

func (s *SyslogStep) Verify(ctx *Context) bool {
	console.Println("Verifying syslog-ng configuration...")
	valid := true

	if !ctx.Opkg.IsInstalled("syslog-ng") {
		syslogLog.Error("Required syslog-ng package is not installed.")
		valid = false
	}

	info, err := ctx.Sys.Stat(s.ConfPath)
	if err != nil {
		syslogLog.Errorf("MISSING: %s not found", s.ConfPath)
		return false
	}
	if !ownedByRoot(info) {
		syslogLog.Errorf("ERROR: %s is not owned by 'root'.", s.ConfPath)
		valid = false
	}
	return valid
}
