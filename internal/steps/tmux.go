package steps

import (
	"github.com/ni/nilrt-snac/internal/configfile"
	"github.com/ni/nilrt-snac/internal/console"
	"github.com/ni/nilrt-snac/internal/logging"
)

var tmuxLog = logging.New("snac.tmux")

const tmuxSnacConf = `
# NILRT SNAC configuration tmux-snac.conf. Do not hand-edit.
set -g lock-after-time 900
`

// tmuxProfile replaces interactive login shells with tmux so the
// lock-after-time policy applies to every ssh and console session.
const tmuxProfile = `
# NILRT SNAC configuration tmux.sh. Do not hand-edit.
if [ "$PS1" ]; then
    parent=$(ps -o ppid= -p $$)
    name=$(ps -o comm= -p $parent)
    case "$name" in (sshd|login) exec tmux ;; esac
fi
`

// TmuxStep installs tmux and enforces the inactivity lock on interactive
// sessions.
type TmuxStep struct {
	SnacConfPath string
	ProfilePath  string
}

// NewTmuxStep returns the step with the standard system paths.
func NewTmuxStep() *TmuxStep {
	return &TmuxStep{
		SnacConfPath: "/usr/share/tmux/conf.d/snac.conf",
		ProfilePath:  "/etc/profile.d/tmux.sh",
	}
}

func (s *TmuxStep) Name() string { return "tmux" }

func (s *TmuxStep) Configure(ctx *Context) error {
	console.Println("Configuring tmux...")
	snacConf := configfile.Load(s.SnacConfPath)
	profile := configfile.Load(s.ProfilePath)

	if err := ctx.Opkg.Install("tmux", false); err != nil {
		return err
	}

	if !snacConf.Exists() {
		snacConf.Add(tmuxSnacConf)
	}
	if !profile.Exists() {
		profile.Add(tmuxProfile)
	}

	if err := snacConf.Save(ctx.DryRun); err != nil {
		return err
	}
	return profile.Save(ctx.DryRun)
}

func (s *TmuxStep) Verify(ctx *Context) bool {
	console.Println("Verifying tmux configuration...")
	snacConf := configfile.Load(s.SnacConfPath)
	profile := configfile.Load(s.ProfilePath)
	valid := true
	if !ctx.Opkg.IsInstalled("tmux") {
		valid = false
		tmuxLog.Error("MISSING: tmux not installed")
	}
	if !snacConf.Exists() {
		valid = false
		tmuxLog.Errorf("MISSING: %s not found", snacConf.Path)
	}
	if !snacConf.Contains("set -g lock-after-time") {
		valid = false
		tmuxLog.Error("MISSING: commands to inactivity lock")
	}
	if !profile.Exists() {
		valid = false
		tmuxLog.Errorf("MISSING: %s not found", profile.Path)
	}
	if !profile.Contains("exec tmux") {
		valid = false
		tmuxLog.Error("MISSING: command to replace shell with tmux")
	}
	return valid
}
