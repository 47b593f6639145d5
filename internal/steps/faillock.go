package steps

import (
	"github.com/ni/nilrt-snac/internal/console"
	"github.com/ni/nilrt-snac/internal/logging"
)

var faillockLog = logging.New("snac.faillock")

// FaillockStep installs the PAM faillock plugin.
type FaillockStep struct{}

func (s *FaillockStep) Name() string { return "faillock" }

func (s *FaillockStep) Configure(ctx *Context) error {
	console.Println("Configuring PAM faillock...")
	return ctx.Opkg.Install("pam-plugin-faillock", false)
}

func (s *FaillockStep) Verify(ctx *Context) bool {
	console.Println("Verifying PAM faillock...")
	if !ctx.Opkg.IsInstalled("pam-plugin-faillock") {
		faillockLog.Error("MISSING: pam-plugin-faillock not installed")
		return false
	}
	return true
}
