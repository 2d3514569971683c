package vos

import (
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNotFound is the error resulting if a path search failed to find an executable file.
var ErrNotFound = exec.ErrNotFound

// ExecChecker reports whether a path exists and can be executed by the
// current user. Directories are never executable entries.
type ExecChecker interface {
	IsExecutable(path string) bool
}

// SearchPath splits the PATH of env into its directories in lookup order.
// Empty segments and repeated directories are dropped; an unset PATH yields
// no directories.
func SearchPath(env VEnv) []string {
	var dirs []string
	seen := make(map[string]bool)
	for _, dir := range filepath.SplitList(env.Getenv(EnvPath)) {
		if dir == "" || seen[dir] {
			continue
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}
	return dirs
}

// PathResolver finds the directory an external command lives in.
type PathResolver struct {
	Env     VEnv
	Checker ExecChecker
}

// NewPathResolver creates a resolver that reads PATH from env on every lookup.
func NewPathResolver(env VEnv, checker ExecChecker) *PathResolver {
	return &PathResolver{Env: env, Checker: checker}
}

// Resolve returns the first directory on the search path that holds an
// executable named exactly name. A miss is reported with ok == false rather
// than an error.
func (r *PathResolver) Resolve(name string) (dir string, ok bool) {
	if name == "" {
		return "", false
	}

	for _, dir := range SearchPath(r.Env) {
		if r.Checker.IsExecutable(JoinPath(dir, name)) {
			return dir, true
		}
	}
	return "", false
}

// LookPath searches for an executable named file in the directories named by
// the PATH environment variable and returns its full path.
func (r *PathResolver) LookPath(name string) (string, error) {
	dir, ok := r.Resolve(name)
	if !ok {
		return "", ErrNotFound
	}
	return JoinPath(dir, name), nil
}

// JoinPath returns dir/name without cleaning, so a relative directory like
// "." keeps its prefix and the result always contains a separator.
func JoinPath(dir, name string) string {
	sep := string(filepath.Separator)
	return strings.TrimSuffix(dir, sep) + sep + name
}
