package steps

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ni/nilrt-snac/internal/system"
)

func sshStep(t *testing.T) *SSHStep {
	t.Helper()
	dir := t.TempDir()
	return &SSHStep{
		SshdConfigPath: filepath.Join(dir, "sshd_config"),
		TmoutPath:      filepath.Join(dir, "tmout.sh"),
	}
}

func TestSSHVerify(t *testing.T) {
	exec := &system.MockCommandExecutor{}
	ctx, _ := testContext(t, exec, &system.MockController{}, "")
	step := sshStep(t)

	require.NoError(t, os.WriteFile(step.SshdConfigPath,
		[]byte("ClientAliveInterval 15\nClientAliveCountMax 4\n"), 0o644))
	require.NoError(t, os.WriteFile(step.TmoutPath,
		[]byte("export TMOUT=600\nreadonly TMOUT\n"), 0o644))

	assert.True(t, step.Verify(ctx))
}

func TestSSHVerifyFlagsMissingKeepalive(t *testing.T) {
	exec := &system.MockCommandExecutor{}
	ctx, _ := testContext(t, exec, &system.MockController{}, "")
	step := sshStep(t)

	require.NoError(t, os.WriteFile(step.SshdConfigPath,
		[]byte("PermitRootLogin yes\n"), 0o644))
	require.NoError(t, os.WriteFile(step.TmoutPath,
		[]byte("export TMOUT=600\n"), 0o644))

	assert.False(t, step.Verify(ctx))
}

func TestSSHVerifyFlagsMissingFiles(t *testing.T) {
	exec := &system.MockCommandExecutor{}
	ctx, _ := testContext(t, exec, &system.MockController{}, "")

	assert.False(t, sshStep(t).Verify(ctx))
}

func TestSSHConfigureIsNoOp(t *testing.T) {
	exec := &system.MockCommandExecutor{}
	ctx, _ := testContext(t, exec, &system.MockController{}, "")

	assert.NoError(t, sshStep(t).Configure(ctx))
	exec.AssertNotCalled(t, "Run")
}
