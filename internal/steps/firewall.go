package steps

import (
	"github.com/ni/nilrt-snac/internal/console"
	"github.com/ni/nilrt-snac/internal/logging"
)

var fwLog = logging.New("snac.firewall")

// ipv6RichRules are the ICMPv6 exemptions required for neighbour discovery
// and reachability testing on otherwise-rejecting policies. Quotes around
// the rule text are forbidden here: firewall-cmd receives the arguments
// verbatim, without shell quote removal.
var ipv6RichRules = []string{
	"--add-rich-rule=rule family=ipv6 icmp-type name=neighbour-advertisement accept",
	"--add-rich-rule=rule family=ipv6 icmp-type name=neighbour-solicitation accept",
	"--add-rich-rule=rule family=ipv6 icmp-type name=echo-request accept",
	"--add-rich-rule=rule family=ipv6 icmp-type name=echo-reply accept",
}

// FirewallStep resets firewalld to the SNAC zone/policy layout: the
// WireGuard link in the work zone, everything else public, host traffic
// restricted to an explicit service list, and REJECT targets outbound.
type FirewallStep struct{}

func (s *FirewallStep) Name() string { return "firewall" }

func (s *FirewallStep) Configure(ctx *Context) error {
	console.Println("Configuring firewall...")
	if ctx.DryRun {
		return nil
	}

	// nftables itself is installed via dependencies.
	for _, pkg := range []string{"firewalld", "firewalld-offline-cmd", "firewalld-log-rotate"} {
		if err := ctx.Opkg.Install(pkg, false); err != nil {
			return err
		}
	}

	iface := ctx.Cfg.WireGuard.Interface
	batches := [][]string{
		{"--reset-to-defaults"},

		{"--zone=work", "--add-interface=" + iface},
		{"--zone=work", "--remove-forward"},
		{"--zone=public", "--remove-forward"},

		{"--new-policy=work-in"},
		{"--policy=work-in", "--add-ingress-zone=work"},
		{"--policy=work-in", "--add-egress-zone=HOST"},
		{"--policy=work-in", "--add-protocol=icmp"},
		{"--policy=work-in", "--add-service=ssh", "--add-service=mdns"},

		{"--new-policy=work-out"},
		{"--policy=work-out", "--add-ingress-zone=HOST"},
		{"--policy=work-out", "--add-egress-zone=work"},
		{"--policy=work-out", "--add-protocol=icmp"},
		{"--policy=work-out", "--add-service=ssh", "--add-service=http", "--add-service=https"},
		{"--policy=work-out", "--set-target=REJECT"},
		append([]string{"--policy=work-out"}, ipv6RichRules...),

		{"--new-policy=public-in"},
		{"--policy=public-in", "--add-ingress-zone=public"},
		{"--policy=public-in", "--add-egress-zone=HOST"},
		{"--policy=public-in", "--add-protocol=icmp"},
		{"--policy=public-in", "--add-service=ssh", "--add-service=wireguard"},

		{"--new-policy=public-out"},
		{"--policy=public-out", "--add-ingress-zone=HOST"},
		{"--policy=public-out", "--add-egress-zone=public"},
		{"--policy=public-out", "--add-protocol=icmp"},
		{"--policy=public-out", "--add-service=dhcp", "--add-service=dhcpv6",
			"--add-service=http", "--add-service=https", "--add-service=wireguard",
			"--add-service=dns"},
		{"--policy=public-out", "--set-target=REJECT"},
		append([]string{"--policy=public-out"}, ipv6RichRules...),

		{"--new-policy=allow-host-ipv6"},
		{"--policy=allow-host-ipv6", "--add-ingress-zone=ANY"},
		{"--policy=allow-host-ipv6", "--add-egress-zone=HOST"},
		append([]string{"--policy=allow-host-ipv6"},
			"--add-rich-rule=rule family=ipv6 icmp-type name=echo-request accept",
			"--add-rich-rule=rule family=ipv6 icmp-type name=echo-reply accept"),
	}

	for _, batch := range batches {
		args := append([]string{"-q"}, batch...)
		if err := ctx.Exec.Run("firewall-offline-cmd", args...); err != nil {
			return err
		}
	}
	return ctx.Exec.Run("firewall-cmd", "-q", "--reload")
}

func (s *FirewallStep) Verify(ctx *Context) bool {
	console.Println("Verifying firewall configuration...")
	valid := true

	if _, err := ctx.Exec.Output("pidof", "-x", "/usr/sbin/firewalld"); err != nil {
		fwLog.Error("MISSING: running firewalld")
		valid = false
	}

	if err := ctx.Exec.Run("firewall-cmd", "-q", "--check-config"); err != nil {
		fwLog.Error("MISSING: firewall-cmd")
		valid = false
	}

	valid = s.checkTarget(ctx, "work-in", "CONTINUE") && valid
	valid = s.checkTarget(ctx, "work-out", "REJECT") && valid
	valid = s.checkTarget(ctx, "public-in", "CONTINUE") && valid
	valid = s.checkTarget(ctx, "public-out", "REJECT") && valid

	valid = s.verifyRuleset() && valid
	return valid
}

// checkTarget verifies a policy's target matches what SNAC configured.
func (s *FirewallStep) checkTarget(ctx *Context, policy, expected string) bool {
	actual, err := ctx.Exec.Output("firewall-cmd", "--permanent", "--policy="+policy, "--get-target")
	if err != nil {
		fwLog.Errorf("ERROR: policy %s target: %v", policy, err)
		return false
	}
	if actual != expected {
		fwLog.Errorf("ERROR: policy %s target: expected %s, observed %s", policy, expected, actual)
		return false
	}
	return true
}
