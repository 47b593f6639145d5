package steps

import (
	"github.com/ni/nilrt-snac/internal/console"
	"github.com/ni/nilrt-snac/internal/logging"
)

var cryptLog = logging.New("snac.cryptsetup")

// CryptsetupStep installs the dm-crypt userspace tooling so operators can
// stand up encrypted volumes.
type CryptsetupStep struct{}

func (s *CryptsetupStep) Name() string { return "cryptsetup" }

func (s *CryptsetupStep) Configure(ctx *Context) error {
	console.Println("Configuring cryptsetup...")
	return ctx.Opkg.Install("cryptsetup", false)
}

func (s *CryptsetupStep) Verify(ctx *Context) bool {
	console.Println("Verifying cryptsetup configuration...")
	if !ctx.Opkg.IsInstalled("cryptsetup") {
		cryptLog.Error("MISSING: cryptsetup not installed")
		return false
	}
	return true
}
