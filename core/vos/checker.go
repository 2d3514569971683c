package vos

import (
	"github.com/spf13/afero"
)

// VFS is the filesystem abstraction used for executable checks.
type VFS = afero.Fs

// FSChecker treats any non-directory with an execute bit set as executable.
// It works on any afero filesystem, so tests can build a search path in
// memory.
type FSChecker struct {
	Fs VFS
}

var _ ExecChecker = (*FSChecker)(nil)

// NewFSChecker creates a mode-bit based checker over fs.
func NewFSChecker(fs VFS) *FSChecker {
	return &FSChecker{Fs: fs}
}

// IsExecutable implements ExecChecker.IsExecutable.
func (c *FSChecker) IsExecutable(path string) bool {
	d, err := c.Fs.Stat(path)
	if err != nil {
		return false
	}
	m := d.Mode()
	return !m.IsDir() && m&0111 != 0
}
