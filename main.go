package main

import (
	"fmt"
	"os"

	"github.com/ni/nilrt-snac/cmd"
	"github.com/ni/nilrt-snac/internal/brand"
	"github.com/ni/nilrt-snac/internal/snacerr"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(snacerr.ExUsage)
	}

	switch os.Args[1] {
	case "configure":
		os.Exit(cmd.RunConfigure(os.Args[2:]))

	case "verify":
		os.Exit(cmd.RunVerify(os.Args[2:]))

	case "sessions":
		os.Exit(cmd.RunSessions(os.Args[2:]))

	case "version", "-V", "--version":
		cmd.RunVersion()

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(snacerr.ExUsage)
	}
}

func printUsage() {
	fmt.Printf(`%s - %s

Usage:
  %s <command> [options]

Commands:
  configure   Set SNAC mode
  verify      Verify SNAC mode configured correctly
  sessions    List recorded configure/verify runs
  version     Print version information
  help        Show this help

Configure options:
  -y, -yes        Consent to changes
  -n, -dry-run    Print changes without applying them
  -v, -verbose    Print debug information
  -no-log         Disable session logging
  -c, -config     Configuration file (default %s/%s)
  -audit-email    Address for auditd alert mail

Verify options:
  -v, -verbose    Print debug information
  -no-log         Disable session logging
  -c, -config     Configuration file

Sessions options:
  -l, -limit      Maximum number of sessions to list
  -c, -config     Configuration file

Every configure and verify run is captured to a timestamped log under
%s unless -no-log is given.
`, brand.BinaryName, brand.Description, brand.BinaryName,
		brand.DefaultConfigDir, brand.ConfigFileName, brand.DefaultLogDir)
}
