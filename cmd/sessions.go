package cmd

import (
	"flag"

	"github.com/ni/nilrt-snac/internal/audit"
	"github.com/ni/nilrt-snac/internal/config"
	"github.com/ni/nilrt-snac/internal/console"
	"github.com/ni/nilrt-snac/internal/snacerr"
)

// RunSessions handles the "sessions" command: it lists recent recorded
// configure/verify runs from the session index, newest first.
func RunSessions(args []string) int {
	fs := flag.NewFlagSet("sessions", flag.ContinueOnError)

	var (
		limit      int
		configPath string
	)
	fs.IntVar(&limit, "limit", 20, "Maximum number of sessions to list")
	fs.IntVar(&limit, "l", 20, "Alias for -limit")
	fs.StringVar(&configPath, "config", "", "Configuration file")
	fs.StringVar(&configPath, "c", "", "Alias for -config")

	if err := fs.Parse(args); err != nil {
		return snacerr.ExUsage
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Errorf("%v", err)
		return snacerr.ExUsage
	}

	store, err := audit.Open(cfg.AuditDB)
	if err != nil {
		log.Errorf("Session index unavailable: %v", err)
		return snacerr.ExError
	}
	defer store.Close()

	sessions, err := store.Recent(limit)
	if err != nil {
		log.Errorf("Failed to list sessions: %v", err)
		return snacerr.ExError
	}
	if len(sessions) == 0 {
		console.Println("No recorded sessions.")
		return snacerr.ExOK
	}

	console.Printf("%-19s  %-9s  %4s  %-10s  %s\n", "TIMESTAMP", "COMMAND", "EXIT", "USER", "LOG")
	for _, sess := range sessions {
		console.Printf("%-19s  %-9s  %4d  %-10s  %s\n",
			sess.Timestamp.Format("2006-01-02 15:04:05"),
			sess.Command, sess.ExitCode, sess.User, sess.LogPath)
	}
	return snacerr.ExOK
}
