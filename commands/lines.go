package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/minish/core/vos"
)

// LineReader reads one line of input at a time after showing a prompt.
// Readline returns io.EOF once input is exhausted.
type LineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
	Close() error
}

var _ LineReader = (*readline.Instance)(nil)

// ReadlineOptions configures NewReadlineReader.
type ReadlineOptions struct {
	// HistoryFile is where history is persisted, empty to keep it in memory.
	HistoryFile string
	// IsTerminal reports whether the I/O is attached to a terminal.
	IsTerminal func() bool
	// Width returns the terminal width, nil uses the local terminal.
	Width func() int
	// Remote is set when the terminal isn't the local process's, so raw mode
	// must not be toggled on the local stdin.
	Remote bool
}

// NewReadlineReader creates a line editor attached to vio.
func NewReadlineReader(vio vos.VIO, opts ReadlineOptions) (LineReader, error) {
	cfg := &readline.Config{
		Stdin:          readline.NewCancelableStdin(vio.Stdin()),
		Stdout:         vio.Stdout(),
		Stderr:         vio.Stderr(),
		HistoryFile:    opts.HistoryFile,
		FuncGetWidth:   opts.Width,
		FuncIsTerminal: opts.IsTerminal,
	}
	if opts.Remote {
		cfg.FuncMakeRaw = func() error { return nil }
		cfg.FuncExitRaw = func() error { return nil }
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	return readline.NewEx(cfg)
}

// NewScannerReader reads lines from r without any editing, writing the
// prompt to w before each read. It suits pipes and scripted input. Lines
// have no length limit.
func NewScannerReader(r io.Reader, w io.Writer) LineReader {
	return &scannerReader{
		reader: bufio.NewReader(r),
		w:      w,
	}
}

type scannerReader struct {
	reader *bufio.Reader
	w      io.Writer
	prompt string
}

func (s *scannerReader) SetPrompt(prompt string) {
	s.prompt = prompt
}

func (s *scannerReader) Readline() (string, error) {
	if _, err := fmt.Fprint(s.w, s.prompt); err != nil {
		return "", err
	}

	line, err := s.reader.ReadString('\n')
	switch {
	case errors.Is(err, io.EOF) && line != "":
		// Final line without a newline, EOF comes on the next read.
	case err != nil:
		return "", err
	}

	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

func (s *scannerReader) Close() error {
	return nil
}
