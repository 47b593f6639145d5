package steps

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ni/nilrt-snac/internal/configfile"
	"github.com/ni/nilrt-snac/internal/system"
)

func auditdStep(t *testing.T) *AuditdStep {
	t.Helper()
	dir := t.TempDir()
	return &AuditdStep{
		ConfPath:       filepath.Join(dir, "auditd.conf"),
		ScriptPath:     filepath.Join(dir, "audit_email_alert.pl"),
		PluginConfPath: filepath.Join(dir, "audit_email_alert.conf"),
		LogPath:        filepath.Join(dir, "log"),
		RCLinkPath:     filepath.Join(dir, "S20auditd"),
	}
}

func TestValidEmail(t *testing.T) {
	assert.True(t, validEmail("audit@example.com"))
	assert.True(t, validEmail("root@nilrt-target"))
	assert.False(t, validEmail(""))
	assert.False(t, validEmail("root"))
	assert.False(t, validEmail("two words@example.com"))
}

func TestAuditdResolveEmail(t *testing.T) {
	exec := &system.MockCommandExecutor{}
	ctx, _ := testContext(t, exec, &system.MockController{}, "")
	step := auditdStep(t)

	require.NoError(t, os.WriteFile(step.ConfPath, []byte("action_mail_acct = ops@example.com\n"), 0o644))
	conf := configfile.Load(step.ConfPath)

	// The tool configuration wins over the existing auditd.conf value.
	ctx.Cfg.AuditEmail = "audit@example.com"
	assert.Equal(t, "audit@example.com", step.resolveEmail(ctx, conf))

	ctx.Cfg.AuditEmail = ""
	assert.Equal(t, "ops@example.com", step.resolveEmail(ctx, conf))

	empty := configfile.Load(filepath.Join(t.TempDir(), "absent.conf"))
	hostname, err := os.Hostname()
	require.NoError(t, err)
	assert.Equal(t, "root@"+hostname, step.resolveEmail(ctx, empty))
}

func TestAuditdConfigureDryRun(t *testing.T) {
	exec := &system.MockCommandExecutor{}
	sys := &system.MockController{}
	ctx, _ := testContext(t, exec, sys,
		"auditd - 3.0\nperl-module-net-smtp - 1.0\naudispd-plugins - 3.0\n")
	ctx.DryRun = true
	ctx.Cfg.AuditEmail = "audit@example.com"

	step := auditdStep(t)
	require.NoError(t, os.WriteFile(step.ConfPath, []byte("action_mail_acct = root\n"), 0o644))

	sys.On("PathExists", step.RCLinkPath).Return(true)
	exec.On("Run", "groupadd", "adm").Return(nil).Maybe()
	exec.On("Run", "groupadd", "sudo").Return(nil).Maybe()
	exec.On("Run", "/etc/init.d/auditd", "restart").Return(nil)
	exec.On("Run", "chown", "-R", "root:adm", step.LogPath).Return(nil)
	exec.On("Run", "chmod", "-R", "770", step.LogPath).Return(nil)
	exec.On("Run", "setfacl", "-d", "-m", "g:adm:rwx", step.LogPath).Return(nil)
	exec.On("Run", "setfacl", "-d", "-m", "o::0", step.LogPath).Return(nil)

	require.NoError(t, step.Configure(ctx))
	exec.AssertExpectations(t)
	exec.AssertNotCalled(t, "Run", "update-rc.d", "auditd", "defaults")

	// Dry-run leaves the filesystem untouched.
	data, err := os.ReadFile(step.ConfPath)
	require.NoError(t, err)
	assert.Equal(t, "action_mail_acct = root\n", string(data))
	_, err = os.Stat(step.ScriptPath)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(step.PluginConfPath)
	assert.True(t, os.IsNotExist(err))
}

func TestAuditdVerifyMissingConf(t *testing.T) {
	exec := &system.MockCommandExecutor{}
	sys := &system.MockController{}
	ctx, _ := testContext(t, exec, sys, "auditd - 3.0\n")

	step := auditdStep(t)
	sys.On("Stat", step.ConfPath).Return(nil, os.ErrNotExist)
	sys.On("Stat", step.LogPath).Return(nil, os.ErrNotExist)

	assert.False(t, step.Verify(ctx))
}

func TestAuditdVerifyInvalidEmail(t *testing.T) {
	exec := &system.MockCommandExecutor{}
	sys := &system.MockController{}
	ctx, _ := testContext(t, exec, sys, "auditd - 3.0\n")

	step := auditdStep(t)
	require.NoError(t, os.WriteFile(step.ConfPath, []byte("action_mail_acct = root\n"), 0o644))
	sys.On("Stat", step.ConfPath).Return(nil, os.ErrNotExist)
	sys.On("Stat", step.LogPath).Return(nil, os.ErrNotExist)

	assert.False(t, step.Verify(ctx))
}
