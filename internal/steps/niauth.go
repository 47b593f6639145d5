package steps

import (
	"path/filepath"

	"github.com/ni/nilrt-snac/internal/console"
	"github.com/ni/nilrt-snac/internal/logging"
)

var niauthLog = logging.New("snac.niauth")

// NIAuthStep strips the vendor authentication stack and replaces it with
// the conflicts marker package so the feeds cannot reinstall it. NIAuth
// owns the root password, so removing it also clears the password; login
// afterward is root with no password until the operator sets one.
type NIAuthStep struct {
	// DataDir holds the packaged nilrt-snac-conflicts.ipk artifact.
	DataDir string
}

// NewNIAuthStep returns the step with the standard data directory.
func NewNIAuthStep() *NIAuthStep {
	return &NIAuthStep{DataDir: "/usr/share/nilrt-snac"}
}

func (s *NIAuthStep) Name() string { return "niauth" }

func (s *NIAuthStep) Configure(ctx *Context) error {
	console.Println("Removing NIAuth...")

	// ni-auth is marked Essential; removal has to override that.
	if err := ctx.Opkg.RemoveEssential("ni-auth"); err != nil {
		return err
	}
	if err := ctx.Opkg.Remove("niacctbase-sudo", false); err != nil {
		return err
	}
	if !ctx.Opkg.IsInstalled("nilrt-snac-conflicts") {
		ipk := filepath.Join(s.DataDir, "nilrt-snac-conflicts.ipk")
		if err := ctx.Opkg.Install(ipk, true); err != nil {
			return err
		}
	}

	niauthLog.Debug("Removing root password")
	if !ctx.DryRun {
		return ctx.Exec.Run("passwd", "-d", "root")
	}
	return nil
}

func (s *NIAuthStep) Verify(ctx *Context) bool {
	console.Println("Verifying NIAuth...")
	valid := true
	if ctx.Opkg.IsInstalled("ni-auth") {
		valid = false
		niauthLog.Error("FOUND: ni-auth installed")
	}
	if ctx.Opkg.IsInstalled("niacctbase-sudo") {
		valid = false
		niauthLog.Error("FOUND: niacctbase-sudo installed")
	}
	if !ctx.Opkg.IsInstalled("nilrt-snac-conflicts") {
		valid = false
		niauthLog.Error("MISSING: nilrt-snac-conflicts not installed")
	}
	return valid
}
