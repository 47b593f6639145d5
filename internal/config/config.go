// Package config loads the optional nilrt-snac tool configuration.
//
// The file is HCL at /etc/nilrt-snac/nilrt-snac.hcl. Every attribute is
// optional; a missing file yields the built-in defaults, so a stock target
// needs no configuration at all.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/ni/nilrt-snac/internal/brand"
)

// Config is the top-level tool configuration.
type Config struct {
	// LogDir is where session logs are written.
	LogDir string `hcl:"log_dir,optional"`
	// LogGroup is the administrative group given ownership of logs.
	LogGroup string `hcl:"log_group,optional"`
	// AuditDB is the sqlite session index path.
	AuditDB string `hcl:"audit_db,optional"`
	// AuditEmail receives auditd alert mail. Empty means root at this
	// host.
	AuditEmail string `hcl:"audit_email,optional"`

	WireGuard *WireGuard `hcl:"wireguard,block"`
	NTP       *NTP       `hcl:"ntp,block"`
}

// WireGuard configures the SNAC WireGuard link.
type WireGuard struct {
	// Interface is the WireGuard interface name.
	Interface string `hcl:"interface,optional"`
}

// NTP configures the time servers enforced on the target.
type NTP struct {
	// Servers are ntp.conf server lines (without the "server " prefix).
	Servers []string `hcl:"servers,optional"`
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	return filepath.Join(brand.DefaultConfigDir, brand.ConfigFileName)
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the configuration at path, falling back to defaults when the
// file does not exist. A file that exists but fails to parse is an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	var cfg Config
	if err := hclsimple.DecodeFile(path, nil, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LogDir == "" {
		c.LogDir = brand.DefaultLogDir
	}
	if c.LogGroup == "" {
		c.LogGroup = brand.LogGroup
	}
	if c.AuditDB == "" {
		c.AuditDB = filepath.Join(brand.DefaultStateDir, "sessions.db")
	}
	if c.WireGuard == nil {
		c.WireGuard = &WireGuard{}
	}
	if c.WireGuard.Interface == "" {
		c.WireGuard.Interface = "wglv0"
	}
	if c.NTP == nil {
		c.NTP = &NTP{}
	}
	if len(c.NTP.Servers) == 0 {
		c.NTP.Servers = []string{"0.us.pool.ntp.mil iburst maxpoll 16"}
	}
}
