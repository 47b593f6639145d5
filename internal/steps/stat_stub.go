//go:build !linux

package steps

import "os"

func ownedByRoot(info os.FileInfo) bool {
	return true
}

func groupNameOf(info os.FileInfo) (string, bool) {
	return "", false
}
