package commands

import (
	"context"
	"errors"

	"github.com/josephlewis42/minish/core/vos"
)

// Handler dispatches a single command line.
type Handler struct {
	command *Command
}

// NewHandler resolves name through the registry. Resolution errors are
// returned unchanged.
func NewHandler(registry *Registry, name string, args []string) (*Handler, error) {
	cmd, err := registry.Resolve(name, args)
	switch {
	case errors.Is(err, ErrCommandNotFound):
		registry.events().UnknownCommand(append([]string{name}, args...))
		return nil, err
	case err != nil:
		return nil, err
	}

	registry.events().RunCommand(cmd.Argv(), cmd.Kind.String(), cmd.Path)
	return &Handler{command: cmd}, nil
}

// Command returns the resolved command.
func (h *Handler) Command() *Command {
	return h.command
}

// TerminatesLoop reports whether the shell should stop after this command.
func (h *Handler) TerminatesLoop() bool {
	return h.command.TerminatesLoop
}

// Execute runs the command exactly once. External commands block until the
// child exits.
func (h *Handler) Execute(ctx context.Context, vio vos.VIO) error {
	return h.command.Run(ctx, vio)
}
