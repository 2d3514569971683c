// Package vostest provides hermetic fakes of the vos services for tests.
package vostest

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"
	"path"
	"sync"

	"github.com/josephlewis42/minish/core/vos"
	"github.com/spf13/afero"
)

// Program is a fake executable, it returns the process exit status.
type Program func(argv []string, stdout, stderr io.Writer) int

// Echo is a Program that prints its arguments prefixed with its argv[0].
func Echo(argv []string, stdout, stderr io.Writer) int {
	buf := &bytes.Buffer{}
	for i, arg := range argv {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(arg)
	}
	buf.WriteString("\n")
	_, _ = stdout.Write(buf.Bytes())
	return 0
}

// Fail is a Program that writes its name to stderr and exits with status 1.
func Fail(argv []string, stdout, stderr io.Writer) int {
	_, _ = io.WriteString(stderr, argv[0]+": failed\n")
	return 1
}

// TestOS is an in-memory operating system: a filesystem, an environment and
// a table of fake programs keyed by absolute path.
type TestOS struct {
	Fs  afero.Fs
	Env *vos.MapEnv

	mu       sync.Mutex
	programs map[string]Program
	calls    [][]string
}

var _ vos.Runner = (*TestOS)(nil)

// New creates an empty TestOS with no PATH set.
func New() *TestOS {
	return &TestOS{
		Fs:       afero.NewMemMapFs(),
		Env:      vos.NewMapEnv(),
		programs: make(map[string]Program),
	}
}

// SetPath sets the PATH variable.
func (t *TestOS) SetPath(value string) *TestOS {
	t.Env.Setenv(vos.EnvPath, value)
	return t
}

// AddFile creates a file with the given permissions, creating parents.
func (t *TestOS) AddFile(name string, perm fs.FileMode) *TestOS {
	if err := t.Fs.MkdirAll(path.Dir(name), 0755); err != nil {
		panic(err)
	}
	if err := afero.WriteFile(t.Fs, name, nil, perm); err != nil {
		panic(err)
	}
	if err := t.Fs.Chmod(name, perm); err != nil {
		panic(err)
	}
	return t
}

// AddDir creates a directory with the given permissions.
func (t *TestOS) AddDir(name string, perm fs.FileMode) *TestOS {
	if err := t.Fs.MkdirAll(name, perm); err != nil {
		panic(err)
	}
	return t
}

// AddExecutable installs prog as an executable file at name.
func (t *TestOS) AddExecutable(name string, prog Program) *TestOS {
	t.AddFile(name, 0755)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.programs[name] = prog
	return t
}

// Checker returns an ExecChecker over the in-memory filesystem.
func (t *TestOS) Checker() vos.ExecChecker {
	return vos.NewFSChecker(t.Fs)
}

// Resolver returns a PathResolver over the environment and filesystem.
func (t *TestOS) Resolver() *vos.PathResolver {
	return vos.NewPathResolver(t.Env, t.Checker())
}

// Calls returns the argv of every program run so far.
func (t *TestOS) Calls() [][]string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([][]string(nil), t.calls...)
}

// Run implements vos.Runner.Run.
func (t *TestOS) Run(ctx context.Context, name string, argv []string) (*vos.Result, error) {
	t.mu.Lock()
	prog, ok := t.programs[name]
	t.calls = append(t.calls, argv)
	t.mu.Unlock()

	if !ok {
		return nil, &fs.PathError{Op: "fork/exec", Path: name, Err: os.ErrNotExist}
	}

	var stdout, stderr bytes.Buffer
	code := prog(argv, &stdout, &stderr)
	return &vos.Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: code,
	}, nil
}
