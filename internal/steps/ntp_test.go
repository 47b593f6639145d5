package steps

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ni/nilrt-snac/internal/system"
)

func TestNTPConfigureReplacesVendorPool(t *testing.T) {
	exec := &system.MockCommandExecutor{}
	ctx, _ := testContext(t, exec, &system.MockController{}, "ntp - 4.2.8p15\n")
	exec.On("Run", "/etc/init.d/ntpd", "restart").Return(nil)

	confPath := filepath.Join(t.TempDir(), "ntp.conf")
	require.NoError(t, os.WriteFile(confPath,
		[]byte("driftfile /var/lib/ntp.drift\nserver 0.natinst.pool.ntp.org iburst\n"), 0o644))

	step := &NTPStep{ConfPath: confPath}
	require.NoError(t, step.Configure(ctx))

	data, err := os.ReadFile(confPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "natinst")
	assert.Contains(t, string(data), "server 0.us.pool.ntp.mil iburst maxpoll 16")
	assert.Contains(t, string(data), "driftfile")
	exec.AssertExpectations(t)
}

func TestNTPConfigureIsIdempotent(t *testing.T) {
	exec := &system.MockCommandExecutor{}
	ctx, _ := testContext(t, exec, &system.MockController{}, "ntp - 4.2.8p15\n")
	exec.On("Run", "/etc/init.d/ntpd", "restart").Return(nil)

	confPath := filepath.Join(t.TempDir(), "ntp.conf")
	require.NoError(t, os.WriteFile(confPath,
		[]byte("server 0.us.pool.ntp.mil iburst maxpoll 16\n"), 0o644))

	step := &NTPStep{ConfPath: confPath}
	require.NoError(t, step.Configure(ctx))

	data, err := os.ReadFile(confPath)
	require.NoError(t, err)
	assert.Equal(t, "server 0.us.pool.ntp.mil iburst maxpoll 16\n", string(data))
}

func TestNTPVerify(t *testing.T) {
	exec := &system.MockCommandExecutor{}
	ctx, _ := testContext(t, exec, &system.MockController{}, "ntp - 4.2.8p15\n")

	confPath := filepath.Join(t.TempDir(), "ntp.conf")
	require.NoError(t, os.WriteFile(confPath,
		[]byte("server 0.us.pool.ntp.mil iburst maxpoll 16\n"), 0o644))

	step := &NTPStep{ConfPath: confPath}
	assert.True(t, step.Verify(ctx))
}

func TestNTPVerifyFlagsVendorPool(t *testing.T) {
	exec := &system.MockCommandExecutor{}
	ctx, _ := testContext(t, exec, &system.MockController{}, "ntp - 4.2.8p15\n")

	confPath := filepath.Join(t.TempDir(), "ntp.conf")
	require.NoError(t, os.WriteFile(confPath,
		[]byte("server 0.natinst.pool.ntp.org iburst\nserver 0.us.pool.ntp.mil iburst maxpoll 16\n"), 0o644))

	step := &NTPStep{ConfPath: confPath}
	assert.False(t, step.Verify(ctx))
}

func TestNTPVerifyFlagsMissingPackage(t *testing.T) {
	exec := &system.MockCommandExecutor{}
	ctx, _ := testContext(t, exec, &system.MockController{}, "")

	confPath := filepath.Join(t.TempDir(), "ntp.conf")
	require.NoError(t, os.WriteFile(confPath,
		[]byte("server 0.us.pool.ntp.mil iburst maxpoll 16\n"), 0o644))

	step := &NTPStep{ConfPath: confPath}
	assert.False(t, step.Verify(ctx))
}
