package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/josephlewis42/minish/core/vos"
)

// ErrCommandNotFound matches every *NotFoundError.
var ErrCommandNotFound = errors.New("command not found")

// NotFoundError is returned when a name is neither a builtin nor an
// executable on the search path.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: not found", e.Name)
}

// Is implements errors.Is.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrCommandNotFound
}

// Kind tells builtins and external commands apart.
type Kind int

const (
	KindBuiltin Kind = iota
	KindExternal
)

func (k Kind) String() string {
	switch k {
	case KindBuiltin:
		return "builtin"
	case KindExternal:
		return "external"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Command is a resolved, runnable command line. It lives for one line of
// input.
type Command struct {
	// Name the command was invoked as.
	Name string
	// Args holds the arguments, not including the name.
	Args []string

	Kind Kind
	// Builtin is set when Kind is KindBuiltin.
	Builtin Builtin
	// Path is the executable's location when Kind is KindExternal.
	Path string

	// TerminatesLoop is set if the shell should stop after running.
	TerminatesLoop bool

	action func(ctx context.Context, vio vos.VIO) error
}

// Argv returns the name followed by the arguments.
func (c *Command) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

// Run executes the command once, writing output to vio.
func (c *Command) Run(ctx context.Context, vio vos.VIO) error {
	return c.action(ctx, vio)
}
