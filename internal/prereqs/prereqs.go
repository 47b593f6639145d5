// Package prereqs validates the execution environment before any system
// change is made. All failures here are pre-mutation and fatal.
package prereqs

import (
	"os"
	"strings"

	"github.com/ni/nilrt-snac/internal/console"
	"github.com/ni/nilrt-snac/internal/logging"
	"github.com/ni/nilrt-snac/internal/opkg"
	"github.com/ni/nilrt-snac/internal/snacerr"
	"github.com/ni/nilrt-snac/internal/system"
)

// SafeModePath marks a target booted into the safemode runlevel.
const SafeModePath = "/etc/natinst/safemode"

var log = logging.New("snac.prereqs")

// Verify runs every prerequisite check in order and returns the first
// failure.
func Verify(helper *opkg.Helper, exec system.CommandExecutor, sys system.Controller) error {
	if err := checkEUIDRoot(); err != nil {
		return err
	}
	if err := checkIptables(helper, exec); err != nil {
		return err
	}
	if err := checkRunMode(sys); err != nil {
		return err
	}
	return checkDistro(sys)
}

func checkEUIDRoot() error {
	console.Println("Checking EUID")
	if os.Geteuid() != 0 {
		return snacerr.New("This tool must be run as root.", snacerr.ExBadEnvironment)
	}
	return nil
}

// The ip_tables kernel module is only loaded once the first iptables call
// has been made, so the check exercises iptables before looking at lsmod.
func checkIptables(helper *opkg.Helper, exec system.CommandExecutor) error {
	console.Println("Checking iptables")
	if !helper.IsInstalled("iptables") {
		log.Debug("  Installing iptables")
		if err := helper.Install("iptables", false); err != nil {
			return snacerr.Wrap(err, "Failed to install iptables.", snacerr.ExCheckFailure)
		}
	}

	log.Debug("  Ensuring iptables is loaded")
	if err := exec.Run("iptables", "-L"); err != nil {
		return snacerr.Wrap(err, "Failed to load iptables.", snacerr.ExCheckFailure)
	}

	log.Debug("  Ensuring ip_tables module is present")
	out, err := exec.Output("lsmod")
	if err != nil || !strings.Contains(out, "ip_tables") {
		return snacerr.New("Failed to find ip_tables module.", snacerr.ExCheckFailure)
	}
	return nil
}

func checkRunMode(sys system.Controller) error {
	if sys.PathExists(SafeModePath) {
		return snacerr.New("This tool cannot be run in safe mode.", snacerr.ExBadEnvironment)
	}
	return nil
}

func checkDistro(sys system.Controller) error {
	if system.Distro(sys) != "nilrt" {
		return snacerr.New("This tool must be run on a NILRT system.", snacerr.ExBadEnvironment)
	}
	return nil
}
