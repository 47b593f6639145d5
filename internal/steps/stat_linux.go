//go:build linux

package steps

import (
	"os"
	"os/user"
	"strconv"
	"syscall"
)

func ownedByRoot(info os.FileInfo) bool {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return true
	}
	return st.Uid == 0
}

// groupNameOf resolves the owning group name of a file. ok is false when
// the ownership cannot be determined; callers treat that as passing.
func groupNameOf(info os.FileInfo) (string, bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return "", false
	}
	g, err := user.LookupGroupId(strconv.FormatUint(uint64(st.Gid), 10))
	if err != nil {
		return "", false
	}
	return g.Name, true
}
