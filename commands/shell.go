package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/minish/core/vos"
	"go.uber.org/zap"
)

const DefaultPrompt = "$ "

// Shell is the read-evaluate-print loop.
type Shell struct {
	IO       vos.VIO
	Registry *Registry
	Lines    LineReader
	Prompt   string
	Log      *zap.SugaredLogger

	// Set to true to quit the shell
	Quit bool
}

// NewShell creates a shell reading lines from lines and writing results to
// vio.
func NewShell(vio vos.VIO, registry *Registry, lines LineReader) *Shell {
	return &Shell{
		IO:       vio,
		Registry: registry,
		Lines:    lines,
		Prompt:   DefaultPrompt,
		Log:      zap.NewNop().Sugar(),
	}
}

// Run reads and executes lines until exit is run or input ends. It returns
// the process exit status.
func (s *Shell) Run(ctx context.Context) int {
	for !s.Quit {
		s.Lines.SetPrompt(s.Prompt)
		line, err := s.Lines.Readline()

		switch {
		case errors.Is(err, io.EOF):
			return 0 // Input closed, quit.

		case errors.Is(err, readline.ErrInterrupt):
			// Interrupt clears line.
			continue

		case err != nil:
			s.Log.Errorf("reading input: %v", err)
			return 1

		default:
			s.RunLine(ctx, line)
		}
	}
	return 0
}

// RunLine executes a single line of input and reports whether the shell
// should exit. Failures are written to stdout and never stop the shell.
func (s *Shell) RunLine(ctx context.Context, line string) (exit bool) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return false // empty line
	}

	handler, err := NewHandler(s.Registry, tokens[0], tokens[1:])
	if err != nil {
		s.printError(err)
		return false
	}

	if err := handler.Execute(ctx, s.IO); err != nil {
		s.printError(err)
	}

	if handler.TerminatesLoop() {
		s.Quit = true
	}
	return s.Quit
}

func (s *Shell) printError(err error) {
	fmt.Fprintln(s.IO.Stdout(), err)
}
