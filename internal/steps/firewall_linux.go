//go:build linux

package steps

import "github.com/google/nftables"

// verifyRuleset confirms firewalld's ruleset actually made it into the
// kernel by looking for the firewalld table over netlink. firewall-cmd only
// proves the daemon's configuration parses; this proves packets are being
// filtered. Without netlink access the check is skipped with a warning.
func (s *FirewallStep) verifyRuleset() bool {
	conn, err := nftables.New()
	if err != nil {
		fwLog.Warnf("Cannot open nftables, skipping kernel ruleset check: %v", err)
		return true
	}

	tables, err := conn.ListTables()
	if err != nil {
		fwLog.Warnf("Cannot list nftables tables, skipping kernel ruleset check: %v", err)
		return true
	}
	for _, table := range tables {
		if table.Name == "firewalld" {
			return true
		}
	}
	fwLog.Error("MISSING: firewalld nftables ruleset not loaded in kernel")
	return false
}
