// Package opkg wraps the opkg package manager.
package opkg

import (
	"fmt"
	"strings"

	"github.com/ni/nilrt-snac/internal/logging"
	"github.com/ni/nilrt-snac/internal/system"
)

// SnacConfPath is the opkg configuration fragment owned by this tool.
const SnacConfPath = "/etc/opkg/snac.conf"

var log = logging.New("snac.opkg")

// Helper manages opkg install/remove operations with an installed-package
// cache so repeated installs are cheap.
type Helper struct {
	exec      system.CommandExecutor
	dryRun    bool
	installed map[string]bool
	loaded    bool
}

// NewHelper returns a Helper using the given executor. Call Load before
// querying installed packages.
func NewHelper(exec system.CommandExecutor) *Helper {
	return &Helper{
		exec:      exec,
		installed: make(map[string]bool),
	}
}

// SetDryRun toggles dry-run mode: installs and removals are logged but not
// executed.
func (h *Helper) SetDryRun(dryRun bool) {
	h.dryRun = dryRun
}

// Load refreshes the package feeds and populates the installed-package
// cache from `opkg list-installed`.
func (h *Helper) Load() error {
	if err := h.Update(); err != nil {
		return err
	}
	out, err := h.exec.Output("opkg", "list-installed")
	if err != nil {
		return fmt.Errorf("list installed packages: %w", err)
	}
	for _, line := range strings.Split(out, "\n") {
		pkg, _, found := strings.Cut(line, " - ")
		if found {
			h.installed[strings.TrimSpace(pkg)] = true
		}
	}
	h.loaded = true
	return nil
}

// Loaded reports whether the installed-package cache has been populated.
func (h *Helper) Loaded() bool {
	return h.loaded
}

// IsInstalled reports whether the package is in the installed cache.
func (h *Helper) IsInstalled(pkg string) bool {
	return h.installed[pkg]
}

// Install installs a package unless it is already present. forceReinstall
// installs unconditionally with --force-reinstall (used for local .deb and
// .ipk artifacts).
func (h *Helper) Install(pkg string, forceReinstall bool) error {
	if h.IsInstalled(pkg) && !forceReinstall {
		log.Debugf("%s already installed", pkg)
		return nil
	}
	args := []string{"install"}
	if forceReinstall {
		args = append(args, "--force-reinstall")
	}
	args = append(args, pkg)
	if !h.dryRun {
		if err := h.exec.Run("opkg", args...); err != nil {
			return err
		}
	}
	h.installed[pkg] = true
	return nil
}

// Remove removes a package if installed. forceDepends passes
// --force-depends through to opkg.
func (h *Helper) Remove(pkg string, forceDepends bool) error {
	var flags []string
	if forceDepends {
		flags = append(flags, "--force-depends")
	}
	return h.remove(pkg, flags)
}

// RemoveEssential removes a package marked Essential, overriding both the
// essential and dependency checks.
func (h *Helper) RemoveEssential(pkg string) error {
	return h.remove(pkg, []string{"--force-essential", "--force-depends"})
}

func (h *Helper) remove(pkg string, flags []string) error {
	if !h.IsInstalled(pkg) {
		log.Debugf("%s already uninstalled", pkg)
		return nil
	}
	args := append([]string{"remove"}, flags...)
	args = append(args, pkg)
	if !h.dryRun {
		if err := h.exec.Run("opkg", args...); err != nil {
			return err
		}
	}
	delete(h.installed, pkg)
	return nil
}

// Update refreshes the package feeds.
func (h *Helper) Update() error {
	if _, err := h.exec.Output("opkg", "update"); err != nil {
		return fmt.Errorf("update package feeds: %w", err)
	}
	return nil
}
