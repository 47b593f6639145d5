package steps

import (
	"path/filepath"

	"golang.zx2c4.com/wireguard/wgctrl/wgtypes"

	"github.com/ni/nilrt-snac/internal/configfile"
	"github.com/ni/nilrt-snac/internal/console"
	"github.com/ni/nilrt-snac/internal/logging"
)

// WireguardToolsDeb is the upstream wireguard-tools artifact installed on
// targets whose feeds do not carry the package.
const WireguardToolsDeb = "http://ftp.us.debian.org/debian/pool/main/w/wireguard/wireguard-tools_1.0.20210914-1+b1_amd64.deb"

var wgLog = logging.New("snac.wireguard")

// WireGuardStep installs wireguard-tools, generates the device keypair, and
// wires the SNAC WireGuard interface into the boot sequence.
type WireGuardStep struct {
	ConfDir     string
	OpkgConf    string
	IfplugdConf string
}

// NewWireGuardStep returns the step with the standard system paths.
func NewWireGuardStep() *WireGuardStep {
	return &WireGuardStep{
		ConfDir:     "/etc/wireguard",
		OpkgConf:    "/etc/opkg/snac.conf",
		IfplugdConf: "/etc/ifplugd/ifplugd.conf",
	}
}

func (s *WireGuardStep) Name() string { return "wireguard" }

func (s *WireGuardStep) Configure(ctx *Context) error {
	console.Println("Installing wireguard-tools...")
	iface := ctx.Cfg.WireGuard.Interface
	conf := configfile.Load(filepath.Join(s.ConfDir, iface+".conf"))
	privateKey := configfile.Load(filepath.Join(s.ConfDir, iface+".privatekey"))
	publicKey := configfile.Load(filepath.Join(s.ConfDir, iface+".publickey"))
	opkgConf := configfile.Load(s.OpkgConf)
	ifplugConf := configfile.Load(s.IfplugdConf)

	if err := ctx.Exec.Run("wget", WireguardToolsDeb, "-O", "./wireguard-tools.deb"); err != nil {
		return err
	}
	if !opkgConf.Contains("arch amd64 15") {
		opkgConf.Add("arch amd64 15\n")
		// The architecture line must be on disk before opkg can accept the
		// amd64 artifact.
		if err := opkgConf.Save(ctx.DryRun); err != nil {
			return err
		}
	}
	if err := ctx.Opkg.Install("./wireguard-tools.deb", true); err != nil {
		return err
	}

	if !ifplugConf.Contains("^ARGS_" + iface + ".*") {
		ifplugConf.Add("\n# This assignment block is managed by the nilrt-snac package.\n" +
			"ARGS_" + iface + "=\"$ARGS --no-auto\"\n# endblock\n")
	}

	if !conf.Contains("^PrivateKey = .+") && !privateKey.Exists() {
		wgLog.Debug("Generating wireguard keypair....")
		key, err := wgtypes.GeneratePrivateKey()
		if err != nil {
			return err
		}
		privateKey.Add(key.String())
		privateKey.Chmod(0o600)
		publicKey.Add(key.PublicKey().String())
		publicKey.Chmod(0o600)
	}

	for _, cf := range []*configfile.File{conf, privateKey, publicKey, opkgConf, ifplugConf} {
		if err := cf.Save(ctx.DryRun); err != nil {
			return err
		}
	}

	if !ctx.DryRun {
		wgLog.Debug("Restarting wireguard service")
		if err := ctx.Exec.Run("update-rc.d", "ni-wireguard-labview",
			"start", "03", "3", "4", "5", ".", "stop", "05", "0", "6", "."); err != nil {
			return err
		}
		if err := ctx.Exec.Run("/etc/init.d/ni-wireguard-labview", "restart"); err != nil {
			return err
		}
	}
	return nil
}

func (s *WireGuardStep) Verify(ctx *Context) bool {
	console.Println("Verifying wireguard configuration...")
	iface := ctx.Cfg.WireGuard.Interface
	conf := configfile.Load(filepath.Join(s.ConfDir, iface+".conf"))
	privateKey := configfile.Load(filepath.Join(s.ConfDir, iface+".privatekey"))
	publicKey := configfile.Load(filepath.Join(s.ConfDir, iface+".publickey"))
	opkgConf := configfile.Load(s.OpkgConf)
	ifplugConf := configfile.Load(s.IfplugdConf)

	valid := true
	if !ctx.Opkg.IsInstalled("wireguard-tools") {
		valid = false
		wgLog.Error("MISSING: wireguard-tools not installed")
	}
	for _, cf := range []*configfile.File{conf, privateKey, publicKey} {
		if !cf.Exists() {
			valid = false
			wgLog.Errorf("MISSING: %s", cf.Path)
		}
	}
	if !opkgConf.Contains("arch amd64 15") {
		valid = false
		wgLog.Errorf("MISSING: 'arch amd64 15' in %s", opkgConf.Path)
	}
	if !ifplugConf.Contains("ARGS_" + iface + "=.*") {
		valid = false
		wgLog.Errorf("MISSING: 'ARGS_%s=.*' in %s", iface, ifplugConf.Path)
	}

	valid = s.verifyDevice(iface) && valid
	return valid
}
