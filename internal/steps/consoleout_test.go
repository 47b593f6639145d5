package steps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ni/nilrt-snac/internal/system"
)

func TestConsoleOutConfigure(t *testing.T) {
	exec := &system.MockCommandExecutor{}
	ctx, _ := testContext(t, exec, &system.MockController{}, "")
	exec.On("Run", "nirtcfg", "--set", "section=systemsettings,token=consoleout.enabled,value=False").Return(nil)

	step := &ConsoleOutStep{}
	require.NoError(t, step.Configure(ctx))
	exec.AssertExpectations(t)
}

func TestConsoleOutConfigureDryRun(t *testing.T) {
	exec := &system.MockCommandExecutor{}
	ctx, _ := testContext(t, exec, &system.MockController{}, "")
	ctx.DryRun = true

	step := &ConsoleOutStep{}
	require.NoError(t, step.Configure(ctx))
	exec.AssertNotCalled(t, "Run", "nirtcfg", "--set", "section=systemsettings,token=consoleout.enabled,value=False")
}

func TestConsoleOutVerify(t *testing.T) {
	exec := &system.MockCommandExecutor{}
	ctx, _ := testContext(t, exec, &system.MockController{}, "")
	exec.On("Output", "nirtcfg", "--get", "section=systemsettings,token=consoleout.enabled").Return("False\n", nil)

	step := &ConsoleOutStep{}
	assert.True(t, step.Verify(ctx))
}

func TestConsoleOutVerifyEnabled(t *testing.T) {
	exec := &system.MockCommandExecutor{}
	ctx, _ := testContext(t, exec, &system.MockController{}, "")
	exec.On("Output", "nirtcfg", "--get", "section=systemsettings,token=consoleout.enabled").Return("True\n", nil)

	step := &ConsoleOutStep{}
	assert.False(t, step.Verify(ctx))
}
