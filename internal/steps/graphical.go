package steps

import (
	"github.com/ni/nilrt-snac/internal/console"
	"github.com/ni/nilrt-snac/internal/logging"
)

var graphicalLog = logging.New("snac.graphical")

// forbiddenGraphicalPackages must be absent once the graphical UI is
// deconfigured. Autoremove (enabled by the opkg step) sweeps out their
// dependency trees.
var forbiddenGraphicalPackages = []string{
	"packagegroup-ni-graphical",
	"packagegroup-core-x11",
	"packagegroup-ni-xfce",
	"sysconfig-settings-ui",
}

// GraphicalStep deconfigures X11 and the embedded UI; the target is
// administered over SSH only.
type GraphicalStep struct{}

func (s *GraphicalStep) Name() string { return "graphical" }

func (s *GraphicalStep) Configure(ctx *Context) error {
	console.Println("Deconfiguring the graphical UI...")
	if !ctx.DryRun {
		if err := ctx.Exec.Run("nirtcfg", "--set",
			"section=systemsettings,token=ui.enabled,value=False"); err != nil {
			return err
		}
	}
	for _, pkg := range []string{"packagegroup-ni-graphical", "packagegroup-core-x11"} {
		if err := ctx.Opkg.Remove(pkg, false); err != nil {
			return err
		}
	}
	return nil
}

func (s *GraphicalStep) Verify(ctx *Context) bool {
	console.Println("Verifying Graphical configuration...")
	valid := true
	for _, pkg := range forbiddenGraphicalPackages {
		if ctx.Opkg.IsInstalled(pkg) {
			valid = false
			graphicalLog.Errorf("FOUND: forbidden package installed: %s", pkg)
		}
	}
	return valid
}
