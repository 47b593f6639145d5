package cmd

import (
	"bufio"
	"errors"
	"flag"
	"os"
	"strings"

	"github.com/ni/nilrt-snac/internal/config"
	"github.com/ni/nilrt-snac/internal/console"
	"github.com/ni/nilrt-snac/internal/logging"
	"github.com/ni/nilrt-snac/internal/opkg"
	"github.com/ni/nilrt-snac/internal/prereqs"
	"github.com/ni/nilrt-snac/internal/session"
	"github.com/ni/nilrt-snac/internal/snacerr"
	"github.com/ni/nilrt-snac/internal/steps"
	"github.com/ni/nilrt-snac/internal/system"
)

var log = logging.New("snac.cmd")

// RunConfigure handles the "configure" command and returns the process
// exit code.
func RunConfigure(args []string) int {
	fs := flag.NewFlagSet("configure", flag.ContinueOnError)

	var (
		yes, dryRun, noLog, verbose bool
		configPath, auditEmail      string
	)
	fs.BoolVar(&yes, "yes", false, "Consent to changes")
	fs.BoolVar(&yes, "y", false, "Alias for -yes")
	fs.BoolVar(&dryRun, "dry-run", false, "Print changes without applying them")
	fs.BoolVar(&dryRun, "n", false, "Alias for -dry-run")
	fs.BoolVar(&noLog, "no-log", false, "Disable session logging")
	fs.BoolVar(&verbose, "verbose", false, "Print debug information")
	fs.BoolVar(&verbose, "v", false, "Alias for -verbose")
	fs.StringVar(&configPath, "config", "", "Configuration file")
	fs.StringVar(&configPath, "c", "", "Alias for -config")
	fs.StringVar(&auditEmail, "audit-email", "", "Address for auditd alert mail")

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
	if auditEmail != "" {
		cfg.AuditEmail = auditEmail
	}

	opts := session.Options{
		Command:  "configure",
		Argv:     append([]string{"configure"}, args...),
		Dir:      cfg.LogDir,
		Group:    cfg.LogGroup,
		Disabled: noLog,
	}
	code, logPath, err := session.Run(opts, func() int {
		return configure(cfg, yes, dryRun)
	})
	if err != nil {
		log.Errorf("%v", err)
		return snacerr.CodeOf(err)
	}

	recordSession(cfg, "configure", logPath, code)
	return code
}

func configure(cfg *config.Config, yes, dryRun bool) int {
	log.Warn("!! THIS TOOL IS IN-DEVELOPMENT AND APPROPRIATE ONLY FOR DEVELOPER TESTING !!")
	log.Warn("!! Running this tool will irreversibly alter the state of your system.    !!")
	log.Warn("!! If you are accessing your system using WiFi, you will lose connection. !!")

	if !yes && !consent() {
		return snacerr.ExOK
	}

	console.Println("Configuring SNAC mode.")

	ctx, err := buildContext(cfg, dryRun)
	if err != nil {
		log.Errorf("%v", err)
		return snacerr.CodeOf(err)
	}

	if err := ctx.Opkg.Update(); err != nil {
		log.Errorf("%v", err)
		return snacerr.CodeOf(err)
	}

	for _, step := range steps.All() {
		if err := step.Configure(ctx); err != nil {
			log.Errorf("Step %s failed: %v", step.Name(), err)
			return snacerr.CodeOf(err)
		}
	}

	console.Println("!! A reboot is now required to affect your system configuration. !!")
	console.Println("!! Login with user 'root' and no password.                       !!")
	return snacerr.ExOK
}

func consent() bool {
	console.Printf("Do you want to continue with SNAC configuration? [y/N] ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, os.ErrClosed) {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// buildContext assembles the step dependencies, running the prereq checks
// first. Dry-run skips the prereqs and swaps in the recording executor,
// mirroring how a developer inspects the plan off-target.
func buildContext(cfg *config.Config, dryRun bool) (*steps.Context, error) {
	sys := &system.RealController{}

	var exec system.CommandExecutor = &system.RealCommandExecutor{}
	if dryRun {
		exec = system.NewDryRunExecutor()
	}

	helper := opkg.NewHelper(exec)
	helper.SetDryRun(dryRun)

	// The installed-package cache must exist before the prereq checks
	// consult it.
	if system.Distro(sys) == "nilrt" {
		if err := helper.Load(); err != nil {
			return nil, err
		}
	} else {
		log.Warn("Not running on nilrt, can't get list of installed packages.")
	}

	if !dryRun {
		if err := prereqs.Verify(helper, exec, sys); err != nil {
			return nil, err
		}
	}

	return &steps.Context{
		Cfg:    cfg,
		Opkg:   helper,
		Exec:   exec,
		Sys:    sys,
		DryRun: dryRun,
	}, nil
}
