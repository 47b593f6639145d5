package steps

import (
	"github.com/ni/nilrt-snac/internal/configfile"
	"github.com/ni/nilrt-snac/internal/console"
	"github.com/ni/nilrt-snac/internal/logging"
)

var sudoLog = logging.New("snac.sudo")

const sudoersContent = `
# NILRT SNAC configuration sudoers. Do not hand-edit.
Defaults timestamp_timeout=0
`

// SudoStep forces sudo to re-authenticate on every invocation.
type SudoStep struct {
	SudoersPath string
}

// NewSudoStep returns the step with the standard sudoers.d path.
func NewSudoStep() *SudoStep {
	return &SudoStep{SudoersPath: "/etc/sudoers.d/snac"}
}

func (s *SudoStep) Name() string { return "sudo" }

func (s *SudoStep) Configure(ctx *Context) error {
	console.Println("Configuring sudo...")
	cf := configfile.Load(s.SudoersPath)
	if !cf.Exists() {
		cf.Add(sudoersContent)
	}
	return cf.Save(ctx.DryRun)
}

func (s *SudoStep) Verify(ctx *Context) bool {
	console.Println("Verifying sudo configuration...")
	cf := configfile.Load(s.SudoersPath)
	if !cf.Exists() {
		sudoLog.Errorf("MISSING: %s not found", s.SudoersPath)
		return false
	}
	if !cf.Contains("Defaults timestamp_timeout=0") {
		sudoLog.Error("MISSING: immediate timestamp_timeout")
		return false
	}
	return true
}
