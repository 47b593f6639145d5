// Package session implements the audit-logging capture subsystem that wraps
// every configure/verify invocation.
//
// A Recorder owns one capture lifetime: it creates the log directory and
// file with restrictive permissions, swaps the process console bindings for
// TeeWriters, reroutes every registered log emitter through the same
// writer, runs the wrapped operation, and unwinds everything symmetrically
// on every exit path. Directory and file creation failures are fatal and
// happen before the wrapped operation mutates anything; every later failure
// degrades logging instead of aborting the operation.
package session

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"github.com/ni/nilrt-snac/internal/brand"
	"github.com/ni/nilrt-snac/internal/console"
	"github.com/ni/nilrt-snac/internal/logging"
	"github.com/ni/nilrt-snac/internal/snacerr"
)

const (
	// DirPermissions is the log directory mode: owner rwx, group rx.
	DirPermissions = 0o750
	// FilePermissions is the log file mode: owner rw, group r.
	FilePermissions = 0o640

	headerRuleWidth = 80

	// maxNameAttempts bounds the collision-disambiguation suffix when two
	// sessions start within the same second.
	maxNameAttempts = 100
)

var log = logging.New(brand.LowerName + ".session")

// Options configures one capture session.
type Options struct {
	// Command is the subcommand being recorded (configure, verify).
	Command string
	// Argv is the full argument vector after the binary name, written into
	// the header.
	Argv []string
	// Dir is the log directory. Defaults to brand.DefaultLogDir.
	Dir string
	// Group is the administrative group given ownership of the directory
	// and file when resolvable. Defaults to brand.LogGroup.
	Group string
	// Disabled bypasses the recorder entirely (--no-log).
	Disabled bool
}

type state int

const (
	stateIdle state = iota
	stateDirectoryEnsured
	stateFileOpened
	stateCaptureActive
	stateFinalizing
	stateClosed
	stateFailed
)

// Recorder orchestrates one logged command execution. At most one Recorder
// is active per process; the wrapped operation is synchronous and
// single-shot.
type Recorder struct {
	opts      Options
	state     state
	startedAt time.Time

	path string
	file *os.File
	gid  int // -1 when the admin group is unresolvable

	teeOut, teeErr   *TeeWriter
	prevOut, prevErr io.Writer
	redirector       *logging.Redirector
}

// New returns an idle Recorder for the given options, applying defaults.
func New(opts Options) *Recorder {
	if opts.Dir == "" {
		opts.Dir = brand.DefaultLogDir
	}
	if opts.Group == "" {
		opts.Group = brand.LogGroup
	}
	return &Recorder{opts: opts, gid: -1}
}

// Path returns the log file path, or "" before the file is created.
func (r *Recorder) Path() string {
	return r.path
}

// Start drives the recorder from Idle to CaptureActive. A returned error is
// a setup failure (snacerr.ExBadEnvironment): nothing has been captured,
// no console binding has been touched, and the wrapped operation must not
// run.
func (r *Recorder) Start() error {
	r.startedAt = time.Now()

	if err := r.ensureDir(); err != nil {
		r.state = stateFailed
		return err
	}
	r.state = stateDirectoryEnsured

	if err := r.openFile(); err != nil {
		r.state = stateFailed
		return err
	}
	r.state = stateFileOpened

	r.activate()
	r.state = stateCaptureActive
	return nil
}

// Finish drives an active recorder through Finalizing to Closed: footer,
// emitter restoration, console restoration, then the unconditional file
// close. It is idempotent and never returns an error; teardown problems
// are demoted to warnings.
func (r *Recorder) Finish(exitCode int) {
	if r.state != stateCaptureActive {
		return
	}
	r.state = stateFinalizing

	if err := r.writeFooter(exitCode); err != nil {
		// The redirector is still installed, so this warning reaches the
		// log file when only the console path is broken.
		log.Warnf("Failed to write log footer: %v", err)
	}

	// Unwind logging infrastructure before console ownership so late
	// warnings from redirector teardown still flow through the tee.
	r.redirector.Restore()
	console.Restore(r.prevOut, r.prevErr)

	if err := r.file.Close(); err != nil {
		log.Warnf("Failed to close log file %s: %v", r.path, err)
	}
	r.state = stateClosed
}

// Announce prints the log file path to the restored console. It does
// nothing unless the session reached Closed, and it never fails.
func (r *Recorder) Announce() {
	if r.state != stateClosed || r.path == "" {
		return
	}
	fmt.Fprintf(console.Stdout, "\nLog saved to: %s\n", r.path)
}

// Run executes fn with all console and emitter output captured to a log
// file. It returns fn's exit code and the log path. When opts.Disabled is
// set fn runs directly against the original console destinations and the
// path is empty. A non-nil error is a pre-execution setup failure; fn was
// never invoked.
func Run(opts Options, fn func() int) (code int, logPath string, err error) {
	if opts.Disabled {
		return fn(), "", nil
	}

	r := New(opts)
	if err := r.Start(); err != nil {
		return snacerr.CodeOf(err), "", err
	}

	// Teardown must reach Closed on every exit path, including a panic in
	// fn. A propagating panic records exit code 1 in the footer.
	code = snacerr.ExError
	defer func() {
		r.Finish(code)
		r.Announce()
	}()

	code = fn()
	return code, r.path, nil
}

func (r *Recorder) ensureDir() error {
	dir := r.opts.Dir
	if err := os.MkdirAll(dir, DirPermissions); err != nil {
		return snacerr.Wrap(err, fmt.Sprintf("failed to create log directory %s", dir), snacerr.ExBadEnvironment)
	}
	// MkdirAll modes are subject to the umask; enforce the exact mode.
	if err := os.Chmod(dir, DirPermissions); err != nil {
		return snacerr.Wrap(err, fmt.Sprintf("failed to set permissions on %s", dir), snacerr.ExBadEnvironment)
	}

	r.gid = lookupGroup(r.opts.Group)
	if r.gid >= 0 {
		if err := os.Chown(dir, -1, r.gid); err != nil {
			return snacerr.Wrap(err, fmt.Sprintf("failed to set group ownership on %s", dir), snacerr.ExBadEnvironment)
		}
	}
	return nil
}

func (r *Recorder) openFile() error {
	timestamp := r.startedAt.UTC().Format("20060102-150405")

	var f *os.File
	var path string
	for attempt := 1; attempt <= maxNameAttempts; attempt++ {
		name := fmt.Sprintf("%s-%s.log", r.opts.Command, timestamp)
		if attempt > 1 {
			name = fmt.Sprintf("%s-%s-%d.log", r.opts.Command, timestamp, attempt)
		}
		path = filepath.Join(r.opts.Dir, name)

		var err error
		f, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL|os.O_APPEND, FilePermissions)
		if err == nil {
			break
		}
		if errors.Is(err, fs.ErrExist) {
			f = nil
			continue
		}
		return snacerr.Wrap(err, fmt.Sprintf("failed to create log file %s", path), snacerr.ExBadEnvironment)
	}
	if f == nil {
		return snacerr.New(fmt.Sprintf("failed to create a unique log file under %s", r.opts.Dir), snacerr.ExBadEnvironment)
	}

	// O_CREAT applies the umask; enforce the exact mode on the open handle.
	if err := f.Chmod(FilePermissions); err != nil {
		f.Close()
		os.Remove(path)
		return snacerr.Wrap(err, fmt.Sprintf("failed to set permissions on %s", path), snacerr.ExBadEnvironment)
	}
	if r.gid >= 0 {
		if err := unix.Fchown(int(f.Fd()), -1, r.gid); err != nil {
			f.Close()
			os.Remove(path)
			return snacerr.Wrap(err, fmt.Sprintf("failed to set group ownership on %s", path), snacerr.ExBadEnvironment)
		}
	}

	r.file = f
	r.path = path
	return nil
}

// activate installs the console bindings, reroutes the registered emitters
// through the diagnostic tee, and writes the header. Failures past this
// point degrade logging rather than aborting: the wrapped operation may be
// about to change system state and must proceed.
func (r *Recorder) activate() {
	r.teeOut = NewTeeWriter(console.Stdout, r.file)
	r.teeErr = NewTeeWriter(console.Stderr, r.file)
	r.prevOut, r.prevErr = console.Bind(r.teeOut, r.teeErr)

	// Structured log records default to the diagnostic channel, so the
	// emitters share the stderr tee.
	r.redirector = logging.Redirect(r.teeErr)

	if err := r.writeHeader(); err != nil {
		log.Warnf("Failed to write log header: %v", err)
	}
}

func (r *Recorder) writeHeader() error {
	rule := strings.Repeat("=", headerRuleWidth)
	lines := []string{
		rule,
		fmt.Sprintf("%s %s LOG", brand.Name, strings.ToUpper(r.opts.Command)),
		rule,
		fmt.Sprintf("Timestamp: %s", r.startedAt.Format(time.RFC3339)),
		fmt.Sprintf("Command: %s %s", brand.BinaryName, strings.Join(r.opts.Argv, " ")),
		fmt.Sprintf("User: %s (UID: %d)", currentUser(), os.Getuid()),
		fmt.Sprintf("Hostname: %s", hostname()),
		fmt.Sprintf("Go: %s", runtime.Version()),
		fmt.Sprintf("Platform: %s/%s", runtime.GOOS, runtime.GOARCH),
		rule,
		"",
	}
	_, err := io.WriteString(r.file, strings.Join(lines, "\n")+"\n")
	return err
}

func (r *Recorder) writeFooter(exitCode int) error {
	rule := strings.Repeat("=", headerRuleWidth)
	lines := []string{
		"",
		rule,
		fmt.Sprintf("Execution completed at: %s", time.Now().Format(time.RFC3339)),
		fmt.Sprintf("Exit code: %d", exitCode),
		rule,
		"",
	}
	_, err := io.WriteString(r.file, strings.Join(lines, "\n"))
	return err
}

// lookupGroup resolves a group name to its gid, returning -1 (with a
// warning) when the group does not exist. A host without the adm group
// keeps its default group ownership; that is not fatal.
func lookupGroup(name string) int {
	g, err := user.LookupGroup(name)
	if err != nil {
		log.Warnf("Group '%s' not found. Logs will use the default group.", name)
		return -1
	}
	gid, err := strconv.Atoi(g.Gid)
	if err != nil {
		log.Warnf("Group '%s' has non-numeric gid %q. Logs will use the default group.", name, g.Gid)
		return -1
	}
	return gid
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

func hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return h
}
