// Package configfile edits system configuration files in place.
//
// A File is read once, modified in memory with regex queries and updates,
// and written back with its original mode and ownership preserved. Dry-run
// saves print nothing to disk; changed content is logged as a unified diff
// at debug level either way.
package configfile

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/ni/nilrt-snac/internal/console"
	"github.com/ni/nilrt-snac/internal/logging"
)

var log = logging.New("snac.configfile")

// File is an editable configuration file.
type File struct {
	Path string

	content  string
	original string
	exists   bool
	mode     os.FileMode
	uid, gid int // -1 when unknown
}

// Load reads the file at path. A missing file yields an empty File that
// will be created with mode 0600 on save.
func Load(path string) *File {
	f := &File{
		Path: path,
		mode: 0o600,
		uid:  -1,
		gid:  -1,
	}
	info, err := os.Stat(path)
	if err != nil {
		return f
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return f
	}
	f.exists = true
	f.content = string(data)
	f.original = f.content
	f.mode = info.Mode().Perm()
	return f
}

// Exists reports whether the file existed on disk at load time.
func (f *File) Exists() bool {
	return f.exists
}

// Contains reports whether the content matches the regex pattern.
func (f *File) Contains(pattern string) bool {
	return regexp.MustCompile(`(?m)` + pattern).MatchString(f.content)
}

// ContainsExact reports whether some line equals key, modulo surrounding
// whitespace.
func (f *File) ContainsExact(key string) bool {
	exact := regexp.MustCompile(`(?m)^\s*` + regexp.QuoteMeta(key) + `\s*$`)
	return exact.MatchString(f.content)
}

// Get returns the value of an equals-delimited "key = value" line, or ""
// when the key is absent.
func (f *File) Get(key string) string {
	re := regexp.MustCompile(`(?m)^\s*` + regexp.QuoteMeta(key) + `\s*=\s*(.*)\s*$`)
	m := re.FindStringSubmatch(f.content)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// Update replaces every match of the regex pattern with repl.
func (f *File) Update(pattern, repl string) {
	f.content = regexp.MustCompile(`(?m)`+pattern).ReplaceAllString(f.content, repl)
}

// Add appends value to the content.
func (f *File) Add(value string) {
	f.content += value
}

// Chmod sets the mode applied on the next save.
func (f *File) Chmod(mode os.FileMode) {
	f.mode = mode
}

// Chown sets the owner and group applied on the next save.
func (f *File) Chown(owner, group string) error {
	u, err := user.Lookup(owner)
	if err != nil {
		return fmt.Errorf("lookup user %s: %w", owner, err)
	}
	g, err := user.LookupGroup(group)
	if err != nil {
		return fmt.Errorf("lookup group %s: %w", group, err)
	}
	f.uid, _ = strconv.Atoi(u.Uid)
	f.gid, _ = strconv.Atoi(g.Gid)
	return nil
}

// Save writes the content back to disk with the recorded mode and
// ownership. In dry-run mode nothing is written.
func (f *File) Save(dryRun bool) error {
	if f.content != f.original {
		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(f.original),
			B:        difflib.SplitLines(f.content),
			FromFile: f.Path,
			ToFile:   f.Path + " (new)",
			Context:  3,
		})
		if err == nil && diff != "" {
			log.Debugf("Changes to %s:\n%s", f.Path, diff)
		}
	}

	if dryRun {
		console.Println("dry-run: Not saved")
		return nil
	}

	if dir := filepath.Dir(f.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(f.Path, []byte(f.content), f.mode); err != nil {
		return fmt.Errorf("write %s: %w", f.Path, err)
	}
	if err := os.Chmod(f.Path, f.mode); err != nil {
		return fmt.Errorf("chmod %s: %w", f.Path, err)
	}
	if f.uid >= 0 && f.gid >= 0 {
		if err := os.Chown(f.Path, f.uid, f.gid); err != nil {
			return fmt.Errorf("chown %s: %w", f.Path, err)
		}
	}
	f.original = f.content
	f.exists = true
	return nil
}
