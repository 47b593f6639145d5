package steps

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ni/nilrt-snac/internal/config"
	"github.com/ni/nilrt-snac/internal/console"
	"github.com/ni/nilrt-snac/internal/opkg"
	"github.com/ni/nilrt-snac/internal/system"
)

// testContext binds the console to a buffer and assembles a step context
// around the given mocks. The opkg cache is pre-loaded from listing.
func testContext(t *testing.T, exec *system.MockCommandExecutor, sys system.Controller, listing string) (*Context, *bytes.Buffer) {
	t.Helper()

	out := &bytes.Buffer{}
	prevOut, prevErr := console.Bind(out, out)
	t.Cleanup(func() { console.Restore(prevOut, prevErr) })

	exec.On("Output", "opkg", "update").Return("", nil)
	exec.On("Output", "opkg", "list-installed").Return(listing, nil)
	helper := opkg.NewHelper(exec)
	require.NoError(t, helper.Load())

	return &Context{
		Cfg:  config.Default(),
		Opkg: helper,
		Exec: exec,
		Sys:  sys,
	}, out
}

func TestAllOrdersWireGuardBeforeFirewall(t *testing.T) {
	var wgIdx, fwIdx int
	for i, step := range All() {
		switch step.Name() {
		case "wireguard":
			wgIdx = i
		case "firewall":
			fwIdx = i
		}
	}
	require.Less(t, wgIdx, fwIdx)
}

func TestAllCatalogOrder(t *testing.T) {
	want := []string{
		"ntp", "opkg", "wireguard", "cryptsetup", "niauth", "wifi",
		"faillock", "graphical", "console", "sysapi", "tmux", "pwquality",
		"ssh", "sudo", "firewall", "auditd", "syslog",
	}
	var got []string
	for _, step := range All() {
		got = append(got, step.Name())
	}
	require.Equal(t, want, got)
}

func TestAllNamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, step := range All() {
		require.False(t, seen[step.Name()], "duplicate step name %s", step.Name())
		seen[step.Name()] = true
	}
}
