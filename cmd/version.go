package cmd

import (
	"github.com/ni/nilrt-snac/internal/brand"
	"github.com/ni/nilrt-snac/internal/console"
)

// RunVersion prints the version and license banner.
func RunVersion() {
	console.Printf("%s %s\n", brand.BinaryName, brand.Version)
	console.Println(brand.Copyright)
	console.Printf("License %s: %s License <%s>\n", brand.License, brand.License, brand.LicenseURL)
	console.Println("This is free software: you are free to change and redistribute it.")
	console.Println("There is NO WARRANTY, to the extent permitted by law.")
}
