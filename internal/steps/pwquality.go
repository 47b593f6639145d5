package steps

import (
	"github.com/ni/nilrt-snac/internal/configfile"
	"github.com/ni/nilrt-snac/internal/console"
	"github.com/ni/nilrt-snac/internal/logging"
)

var pwqualityLog = logging.New("snac.pwquality")

const pwqualityEntry = `
# Additional check for password complexity
password	requisite	pam_pwquality.so retry=3
`

// PWQualityStep hardens the PAM password stack: pam_unix remembers the
// last five passwords and pam_pwquality enforces complexity.
type PWQualityStep struct {
	// ConfPath overrides /etc/pam.d/common-password, for tests.
	ConfPath string
}

func (s *PWQualityStep) Name() string { return "pwquality" }

func (s *PWQualityStep) confPath() string {
	if s.ConfPath != "" {
		return s.ConfPath
	}
	return "/etc/pam.d/common-password"
}

func (s *PWQualityStep) Configure(ctx *Context) error {
	console.Println("Configuring Password quality...")
	cf := configfile.Load(s.confPath())

	if !cf.Contains("remember=5") {
		cf.Update(`(password.*pam_unix\.so.*)`, "$1 remember=5")
	}
	if !cf.Contains(`password.*requisite.*pam_pwquality\.so.*retry=3`) {
		cf.Add(pwqualityEntry)
	}

	return cf.Save(ctx.DryRun)
}

func (s *PWQualityStep) Verify(ctx *Context) bool {
	console.Println("Verifying Password quality...")
	cf := configfile.Load(s.confPath())
	valid := true
	if !cf.Contains("remember=5") {
		valid = false
		pwqualityLog.Error("MISSING: 'remember=5' for pam_unix.so configuration")
	}
	if !cf.Contains(`password.*requisite.*pam_pwquality\.so.*retry=3`) {
		valid = false
		pwqualityLog.Error("MISSING: entry to add quality check")
	}
	return valid
}
