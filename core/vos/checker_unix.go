//go:build unix

package vos

import (
	"os"

	"golang.org/x/sys/unix"
)

// AccessChecker asks the kernel whether the current user may execute a file.
type AccessChecker struct{}

var _ ExecChecker = AccessChecker{}

// IsExecutable implements ExecChecker.IsExecutable.
func (AccessChecker) IsExecutable(path string) bool {
	fi, err := os.Stat(path)
	if err != nil || fi.IsDir() {
		return false
	}
	return unix.Access(path, unix.X_OK) == nil
}

// NewHostChecker returns the checker for the real filesystem.
func NewHostChecker() ExecChecker {
	return AccessChecker{}
}
