package steps

import (
	"github.com/ni/nilrt-snac/internal/configfile"
	"github.com/ni/nilrt-snac/internal/console"
	"github.com/ni/nilrt-snac/internal/logging"
)

var sshLog = logging.New("snac.ssh")

// SSHStep verifies the sshd keepalive settings and shell timeout installed
// by the base image. There is nothing to configure; the step exists to
// catch drift.
type SSHStep struct {
	SshdConfigPath string
	TmoutPath      string
}

// NewSSHStep returns the step with the standard system paths.
func NewSSHStep() *SSHStep {
	return &SSHStep{
		SshdConfigPath: "/etc/ssh/sshd_config",
		TmoutPath:      "/etc/profile.d/tmout.sh",
	}
}

func (s *SSHStep) Name() string { return "ssh" }

func (s *SSHStep) Configure(ctx *Context) error {
	return nil
}

func (s *SSHStep) Verify(ctx *Context) bool {
	console.Println("Verifying ssh configuration...")
	sshdConfig := configfile.Load(s.SshdConfigPath)
	tmoutConfig := configfile.Load(s.TmoutPath)
	valid := true
	if !sshdConfig.Exists() {
		valid = false
		sshLog.Errorf("MISSING: %s not found", sshdConfig.Path)
	} else if !sshdConfig.Contains("ClientAliveInterval 15") {
		valid = false
		sshLog.Error("MISSING: expected ClientAliveInterval value")
	} else if !sshdConfig.Contains("ClientAliveCountMax 4") {
		valid = false
		sshLog.Error("MISSING: expected ClientAliveCountMax value")
	}
	if !tmoutConfig.Exists() {
		valid = false
		sshLog.Errorf("MISSING: %s not found", tmoutConfig.Path)
	} else if !tmoutConfig.Contains("TMOUT=600") {
		valid = false
		sshLog.Error("MISSING: expected TMOUT value")
	}
	return valid
}
