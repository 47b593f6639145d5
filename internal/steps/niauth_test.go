package steps

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ni/nilrt-snac/internal/system"
)

func TestNIAuthConfigure(t *testing.T) {
	exec := &system.MockCommandExecutor{}
	ctx, _ := testContext(t, exec, &system.MockController{}, "ni-auth - 24.3\nniacctbase-sudo - 24.3\n")

	step := &NIAuthStep{DataDir: t.TempDir()}
	ipk := filepath.Join(step.DataDir, "nilrt-snac-conflicts.ipk")
	exec.On("Run", "opkg", "remove", "--force-essential", "--force-depends", "ni-auth").Return(nil)
	exec.On("Run", "opkg", "remove", "niacctbase-sudo").Return(nil)
	exec.On("Run", "opkg", "install", "--force-reinstall", ipk).Return(nil)
	exec.On("Run", "passwd", "-d", "root").Return(nil)

	require.NoError(t, step.Configure(ctx))
	exec.AssertExpectations(t)
}

func TestNIAuthConfigureDryRunKeepsPassword(t *testing.T) {
	exec := &system.MockCommandExecutor{}
	ctx, _ := testContext(t, exec, &system.MockController{}, "nilrt-snac-conflicts - 1.0\n")
	ctx.DryRun = true

	step := &NIAuthStep{DataDir: t.TempDir()}
	require.NoError(t, step.Configure(ctx))
	exec.AssertNotCalled(t, "Run", "passwd", "-d", "root")
}

func TestNIAuthVerify(t *testing.T) {
	exec := &system.MockCommandExecutor{}
	ctx, _ := testContext(t, exec, &system.MockController{}, "nilrt-snac-conflicts - 1.0\n")
	assert.True(t, NewNIAuthStep().Verify(ctx))
}

func TestNIAuthVerifyFlagsVendorAuth(t *testing.T) {
	exec := &system.MockCommandExecutor{}
	ctx, _ := testContext(t, exec, &system.MockController{}, "ni-auth - 24.3\nnilrt-snac-conflicts - 1.0\n")
	assert.False(t, NewNIAuthStep().Verify(ctx))
}

func TestNIAuthVerifyFlagsMissingConflicts(t *testing.T) {
	exec := &system.MockCommandExecutor{}
	ctx, _ := testContext(t, exec, &system.MockController{}, "")
	assert.False(t, NewNIAuthStep().Verify(ctx))
}
