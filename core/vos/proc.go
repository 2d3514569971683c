package vos

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Result holds everything a finished child process produced.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Output returns what the child wrote to stdout, or its stderr when stdout
// was empty.
func (r *Result) Output() []byte {
	if len(r.Stdout) > 0 {
		return r.Stdout
	}
	return r.Stderr
}

// Runner runs an executable to completion and captures its output.
//
// argv[0] is the name the program sees itself invoked as, path is the file
// that gets executed. A non-zero exit is reported in the Result, not as an
// error; errors mean the process could not be run at all.
type Runner interface {
	Run(ctx context.Context, path string, argv []string) (*Result, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, path string, argv []string) (*Result, error)

// Run implements Runner.Run.
func (f RunnerFunc) Run(ctx context.Context, path string, argv []string) (*Result, error) {
	return f(ctx, path, argv)
}

// ExecRunner spawns real processes with os/exec.
type ExecRunner struct {
	// Env is passed to the child, if nil the child inherits the shell's
	// environment.
	Env []string
}

var _ Runner = (*ExecRunner)(nil)

// Run implements Runner.Run. The child's stdin is the null device so it
// can't consume the shell's input.
func (e *ExecRunner) Run(ctx context.Context, path string, argv []string) (*Result, error) {
	cmd := exec.CommandContext(ctx, path)
	// path was already resolved, os/exec must not search PATH again.
	cmd.Path = path
	cmd.Err = nil
	if len(argv) > 0 {
		cmd.Args = argv
	}
	cmd.Env = e.Env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		// Non-zero exits are reported through ExitCode.
	case err != nil:
		return nil, err
	}

	return &Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: cmd.ProcessState.ExitCode(),
	}, nil
}
