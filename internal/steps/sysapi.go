package steps

import (
	"github.com/ni/nilrt-snac/internal/console"
	"github.com/ni/nilrt-snac/internal/logging"
)

var sysapiLog = logging.New("snac.sysapi")

// SysAPIStep installs the SSH-transported SysAPI CLI, the supported
// configuration surface once the graphical stack is removed.
type SysAPIStep struct{}

func (s *SysAPIStep) Name() string { return "sysapi" }

func (s *SysAPIStep) Configure(ctx *Context) error {
	console.Println("Configuring SysAPI...")
	return ctx.Opkg.Install("ni-sysapi-sshcli", false)
}

func (s *SysAPIStep) Verify(ctx *Context) bool {
	console.Println("Verifying SysAPI configuration...")
	if !ctx.Opkg.IsInstalled("ni-sysapi-sshcli") {
		sysapiLog.Error("MISSING: ni-sysapi-sshcli not installed")
		return false
	}
	return true
}
