package cmd

import (
	"flag"

	"github.com/ni/nilrt-snac/internal/config"
	"github.com/ni/nilrt-snac/internal/console"
	"github.com/ni/nilrt-snac/internal/logging"
	"github.com/ni/nilrt-snac/internal/session"
	"github.com/ni/nilrt-snac/internal/snacerr"
	"github.com/ni/nilrt-snac/internal/steps"
)

// RunVerify handles the "verify" command and returns the process exit
// code.
func RunVerify(args []string) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)

	var (
		noLog, verbose bool
		configPath     string
	)
	fs.BoolVar(&noLog, "no-log", false, "Disable session logging")
	fs.BoolVar(&verbose, "verbose", false, "Print debug information")
	fs.BoolVar(&verbose, "v", false, "Alias for -verbose")
	fs.StringVar(&configPath, "config", "", "Configuration file")
	fs.StringVar(&configPath, "c", "", "Alias for -config")

	if err := fs.Parse(args); err != nil {
		return snacerr.ExUsage
	}
	if verbose {
		logging.SetLevel(logging.LevelDebug)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Errorf("%v", err)
		return snacerr.ExUsage
	}

	opts := session.Options{
		Command:  "verify",
		Argv:     append([]string{"verify"}, args...),
		Dir:      cfg.LogDir,
		Group:    cfg.LogGroup,
		Disabled: noLog,
	}
	code, logPath, err := session.Run(opts, func() int {
		return verify(cfg)
	})
	if err != nil {
		log.Errorf("%v", err)
		return snacerr.CodeOf(err)
	}

	recordSession(cfg, "verify", logPath, code)
	return code
}

func verify(cfg *config.Config) int {
	console.Println("Validating SNAC mode.")

	ctx, err := buildContext(cfg, false)
	if err != nil {
		log.Errorf("%v", err)
		return snacerr.CodeOf(err)
	}

	valid := true
	for _, step := range steps.All() {
		valid = step.Verify(ctx) && valid
	}

	if !valid {
		log.Error("SNAC mode is not configured correctly.")
		return snacerr.ExCheckFailure
	}
	return snacerr.ExOK
}
