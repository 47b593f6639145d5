package cmd

import (
	"os"
	"os/user"
	"time"

	"github.com/google/uuid"

	"github.com/ni/nilrt-snac/internal/audit"
	"github.com/ni/nilrt-snac/internal/config"
)

// recordSession writes the run into the local session index. Best-effort:
// an unavailable index is a warning, never a failure.
func recordSession(cfg *config.Config, command, logPath string, exitCode int) {
	store, err := audit.Open(cfg.AuditDB)
	if err != nil {
		log.Warnf("Session index unavailable: %v", err)
		return
	}
	defer store.Close()

	err = store.Record(audit.Session{
		Timestamp: time.Now(),
		User:      currentUser(),
		SessionID: uuid.NewString(),
		Command:   command,
		LogPath:   logPath,
		ExitCode:  exitCode,
	})
	if err != nil {
		log.Warnf("Failed to record session: %v", err)
	}
}

func currentUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return "unknown"
}
