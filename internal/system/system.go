// Package system abstracts command execution and filesystem access so the
// hardening steps can be exercised against mocks and honor dry-run mode.
package system

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/ni/nilrt-snac/internal/console"
)

// CommandExecutor runs external commands.
type CommandExecutor interface {
	// Run executes a command with stdout/stderr streamed through the
	// process console bindings, so subprocess output lands in the session
	// log alongside everything else.
	Run(name string, arg ...string) error
	// Output executes a command and returns its combined output without
	// echoing it to the console.
	Output(name string, arg ...string) (string, error)
}

// Controller abstracts the filesystem operations the steps perform.
type Controller interface {
	ReadFile(path string) (string, error)
	WriteFile(path string, data string, perm os.FileMode) error
	Remove(path string) error
	PathExists(path string) bool
	Stat(path string) (os.FileInfo, error)
}

// RealCommandExecutor is the os/exec-backed CommandExecutor.
type RealCommandExecutor struct{}

// Run runs a command, streaming its output through the console bindings.
func (r *RealCommandExecutor) Run(name string, arg ...string) error {
	cmd := exec.Command(name, arg...)
	cmd.Stdout = console.Stdout
	cmd.Stderr = console.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("command %s %s failed: %w", name, strings.Join(arg, " "), err)
	}
	return nil
}

// Output runs a command and returns its combined output.
func (r *RealCommandExecutor) Output(name string, arg ...string) (string, error) {
	cmd := exec.Command(name, arg...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("command %s %s failed: %w, output: %s",
			name, strings.Join(arg, " "), err, string(output))
	}
	return strings.TrimSpace(string(output)), nil
}

// RealController is the os-backed Controller.
type RealController struct{}

func (r *RealController) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (r *RealController) WriteFile(path string, data string, perm os.FileMode) error {
	return os.WriteFile(path, []byte(data), perm)
}

func (r *RealController) Remove(path string) error {
	return os.Remove(path)
}

func (r *RealController) PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (r *RealController) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// Distro returns the distribution ID from /etc/os-release, or "" when it
// cannot be determined.
func Distro(sys Controller) string {
	content, err := sys.ReadFile("/etc/os-release")
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "ID=") {
			return strings.Trim(strings.TrimPrefix(line, "ID="), "\"' ")
		}
	}
	return ""
}
