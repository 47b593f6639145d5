package steps

import (
	"fmt"
	"os"
	"os/user"
	"regexp"

	"github.com/ni/nilrt-snac/internal/configfile"
	"github.com/ni/nilrt-snac/internal/console"
	"github.com/ni/nilrt-snac/internal/logging"
)

var auditdLog = logging.New("snac.auditd")

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+$`)

// AuditdStep installs the Linux audit daemon, points its alert mail at the
// configured address, locks down the audit configuration and /var/log, and
// enables the service at boot.
type AuditdStep struct {
	ConfPath       string
	ScriptPath     string
	PluginConfPath string
	LogPath        string
	RCLinkPath     string
}

// NewAuditdStep returns the step with the standard system paths.
func NewAuditdStep() *AuditdStep {
	return &AuditdStep{
		ConfPath:       "/etc/audit/auditd.conf",
		ScriptPath:     "/etc/audit/audit_email_alert.pl",
		PluginConfPath: "/etc/audit/plugins.d/audit_email_alert.conf",
		LogPath:        "/var/log",
		RCLinkPath:     "/etc/rc2.d/S20auditd",
	}
}

func (s *AuditdStep) Name() string { return "auditd" }

func (s *AuditdStep) Configure(ctx *Context) error {
	console.Println("Configuring auditd...")
	conf := configfile.Load(s.ConfPath)

	if !ctx.Opkg.IsInstalled("auditd") {
		if err := ctx.Opkg.Install("auditd", false); err != nil {
			return err
		}
	}

	if err := s.ensureGroups(ctx, "adm", "sudo"); err != nil {
		return err
	}

	email := s.resolveEmail(ctx, conf)
	if validEmail(email) {
		if conf.Get("action_mail_acct") == "" {
			conf.Add("action_mail_acct = " + email + "\n")
		} else {
			conf.Update(`^action_mail_acct\s*=.*$`, "action_mail_acct = "+email)
		}

		// The alert path mails through Net::SMTP and needs the audisp
		// dispatcher to invoke the script.
		for _, pkg := range []string{"perl-module-net-smtp", "audispd-plugins"} {
			if !ctx.Opkg.IsInstalled(pkg) {
				if err := ctx.Opkg.Install(pkg, false); err != nil {
					return err
				}
			}
		}

		if err := s.writeAlertScript(ctx, email); err != nil {
			return err
		}
		if err := s.writePluginConf(ctx); err != nil {
			return err
		}
	} else {
		auditdLog.Warn("No valid audit email address; skipping mail alert setup.")
	}

	conf.Chmod(0o660)
	if !ctx.DryRun {
		if err := conf.Chown("root", "sudo"); err != nil {
			return err
		}
	}
	if err := conf.Save(ctx.DryRun); err != nil {
		return err
	}

	if !ctx.Sys.PathExists(s.RCLinkPath) {
		if err := ctx.Exec.Run("update-rc.d", "auditd", "defaults"); err != nil {
			return err
		}
	}
	if err := ctx.Exec.Run("/etc/init.d/auditd", "restart"); err != nil {
		return err
	}

	// Audit trails under /var/log are readable and writable only by root
	// and the adm group, including files created later.
	if err := ctx.Exec.Run("chown", "-R", "root:adm", s.LogPath); err != nil {
		return err
	}
	if err := ctx.Exec.Run("chmod", "-R", "770", s.LogPath); err != nil {
		return err
	}
	if err := ctx.Exec.Run("setfacl", "-d", "-m", "g:adm:rwx", s.LogPath); err != nil {
		return err
	}
	return ctx.Exec.Run("setfacl", "-d", "-m", "o::0", s.LogPath)
}

func (s *AuditdStep) Verify(ctx *Context) bool {
	console.Println("Verifying auditd configuration...")
	valid := true

	if !ctx.Opkg.IsInstalled("auditd") {
		valid = false
		auditdLog.Error("MISSING: auditd not installed")
	}

	conf := configfile.Load(s.ConfPath)
	if !conf.Exists() {
		valid = false
		auditdLog.Errorf("MISSING: %s not found", conf.Path)
	} else if !validEmail(conf.Get("action_mail_acct")) {
		valid = false
		auditdLog.Error("MISSING: expected action_mail_acct value")
	}

	valid = s.checkOwnership(ctx, s.ConfPath, "sudo", 0o660) && valid
	valid = s.checkOwnership(ctx, s.LogPath, "adm", 0o770) && valid
	return valid
}

// resolveEmail picks the audit alert address: the tool configuration wins,
// then the address already in auditd.conf, then root at this host.
func (s *AuditdStep) resolveEmail(ctx *Context, conf *configfile.File) string {
	if validEmail(ctx.Cfg.AuditEmail) {
		return ctx.Cfg.AuditEmail
	}
	if existing := conf.Get("action_mail_acct"); validEmail(existing) {
		return existing
	}
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	return "root@" + hostname
}

func (s *AuditdStep) ensureGroups(ctx *Context, groups ...string) error {
	for _, g := range groups {
		if _, err := user.LookupGroup(g); err == nil {
			continue
		}
		if err := ctx.Exec.Run("groupadd", g); err != nil {
			return err
		}
		auditdLog.Debugf("Group %s created.", g)
	}
	return nil
}

func (s *AuditdStep) writeAlertScript(ctx *Context, email string) error {
	script := configfile.Load(s.ScriptPath)
	if script.Exists() {
		return nil
	}
	script.Add(alertScript(email))
	script.Chmod(0o700)
	if !ctx.DryRun {
		if err := script.Chown("root", "sudo"); err != nil {
			return err
		}
	}
	return script.Save(ctx.DryRun)
}

func (s *AuditdStep) writePluginConf(ctx *Context) error {
	plugin := configfile.Load(s.PluginConfPath)
	if plugin.Exists() {
		return nil
	}
	plugin.Add(fmt.Sprintf("active = yes\ndirection = out\npath = %s\ntype = always\n", s.ScriptPath))
	plugin.Chmod(0o600)
	if !ctx.DryRun {
		if err := plugin.Chown("root", "sudo"); err != nil {
			return err
		}
	}
	return plugin.Save(ctx.DryRun)
}

func (s *AuditdStep) checkOwnership(ctx *Context, path, group string, mode os.FileMode) bool {
	info, err := ctx.Sys.Stat(path)
	if err != nil {
		auditdLog.Errorf("MISSING: %s not found", path)
		return false
	}
	valid := true
	if name, ok := groupNameOf(info); ok && name != group {
		auditdLog.Errorf("ERROR: %s is not owned by the '%s' group.", path, group)
		valid = false
	}
	if info.Mode().Perm() != mode {
		auditdLog.Errorf("ERROR: %s does not have %o permissions.", path, mode)
		valid = false
	}
	if !ownedByRoot(info) {
		auditdLog.Errorf("ERROR: %s is not owned by 'root'.", path)
		valid = false
	}
	return valid
}

func validEmail(email string) bool {
	return email != "" && emailPattern.MatchString(email)
}

// alertScript is the Net::SMTP template dropped next to auditd.conf; the
// operator fills in the SMTP relay credentials for their site.
func alertScript(email string) string {
	return fmt.Sprintf(`#!/usr/bin/perl
use strict;
use warnings;
use Net::SMTP;

# Configuration
my $smtp_server = 'smtp.yourisp.com';
my $smtp_user = 'your_email@domain.com';
my $smtp_pass = 'your_password';
my $from = 'your_email@domain.com';
my $to = '%s';
my $subject = 'Audit Alert';
my $body = "A critical audit event has been triggered: $ARGV[0]";

# Create SMTP object
my $smtp = Net::SMTP->new($smtp_server, Timeout => 60)
    or die "Could not connect to SMTP server: $!";

# Authenticate
$smtp->auth($smtp_user, $smtp_pass)
    or die "SMTP authentication failed: $!";

# Send email
$smtp->mail($from)
    or die "Error setting sender: $!";
$smtp->to($to)
    or die "Error setting recipient: $!";
$smtp->data()
    or die "Error starting data: $!";
$smtp->datasend("To: $to\n");
$smtp->datasend("From: $from\n");
$smtp->datasend("Subject: $subject\n");
$smtp->datasend("\n");
$smtp->datasend("$body\n");
$smtp->dataend()
    or die "Error ending data: $!";
$smtp->quit;
`, email)
}
