//go:build !unix

package vos

import (
	"github.com/spf13/afero"
)

// NewHostChecker returns the checker for the real filesystem.
func NewHostChecker() ExecChecker {
	return NewFSChecker(afero.NewOsFs())
}
