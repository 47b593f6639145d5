// Package brand provides centralized product constants for nilrt-snac.
//
// The identity is loaded from brand.json at compile time via go:embed so
// that packaging scripts and docs generators can read the same file.
package brand

import (
	_ "embed"
	"encoding/json"
)

//go:embed brand.json
var brandJSON []byte

// Brand holds all product identity information.
type Brand struct {
	Name             string `json:"name"`
	LowerName        string `json:"lowerName"`
	Vendor           string `json:"vendor"`
	Description      string `json:"description"`
	BinaryName       string `json:"binaryName"`
	DefaultConfigDir string `json:"defaultConfigDir"`
	ConfigFileName   string `json:"configFileName"`
	DefaultLogDir    string `json:"defaultLogDir"`
	DefaultStateDir  string `json:"defaultStateDir"`
	LogGroup         string `json:"logGroup"`
	License          string `json:"license"`
	LicenseURL       string `json:"licenseURL"`
	Copyright        string `json:"copyright"`
}

var b Brand

func init() {
	if err := json.Unmarshal(brandJSON, &b); err != nil {
		panic("failed to parse brand.json: " + err.Error())
	}

	Name = b.Name
	LowerName = b.LowerName
	Vendor = b.Vendor
	Description = b.Description
	BinaryName = b.BinaryName
	DefaultConfigDir = b.DefaultConfigDir
	ConfigFileName = b.ConfigFileName
	DefaultLogDir = b.DefaultLogDir
	DefaultStateDir = b.DefaultStateDir
	LogGroup = b.LogGroup
	License = b.License
	LicenseURL = b.LicenseURL
	Copyright = b.Copyright
}

var (
	Name             string
	LowerName        string
	Vendor           string
	Description      string
	BinaryName       string
	DefaultConfigDir string
	ConfigFileName   string
	DefaultLogDir    string
	DefaultStateDir  string
	LogGroup         string
	License          string
	LicenseURL       string
	Copyright        string

	// Version is overridable at build time via -ldflags.
	Version = "0.9.0"
)

// Get returns the full Brand struct.
func Get() Brand {
	return b
}
