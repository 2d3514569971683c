package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/josephlewis42/minish/core/vos"
)

// PathResolver finds the directory holding an external command.
type PathResolver interface {
	Resolve(name string) (dir string, ok bool)
}

var _ PathResolver = (*vos.PathResolver)(nil)

// EventRecorder receives command events, *logger.SessionLogger implements
// it.
type EventRecorder interface {
	RunCommand(argv []string, kind, path string)
	UnknownCommand(argv []string)
	ProcessExit(argv []string, exitCode, outputBytes int)
}

type nopRecorder struct{}

func (nopRecorder) RunCommand([]string, string, string) {}
func (nopRecorder) UnknownCommand([]string)             {}
func (nopRecorder) ProcessExit([]string, int, int)      {}

// Registry turns command names into runnable Commands.
type Registry struct {
	Resolver PathResolver
	Runner   vos.Runner
	// Events is optional.
	Events EventRecorder
}

// NewRegistry creates a registry that looks up external commands with
// resolver and runs them with runner.
func NewRegistry(resolver PathResolver, runner vos.Runner) *Registry {
	return &Registry{
		Resolver: resolver,
		Runner:   runner,
	}
}

func (r *Registry) events() EventRecorder {
	if r.Events == nil {
		return nopRecorder{}
	}
	return r.Events
}

// Resolve classifies name. Builtins always take precedence over the search
// path. It returns a *NotFoundError if name can't be resolved.
func (r *Registry) Resolve(name string, args []string) (*Command, error) {
	if builtin, ok := LookupBuiltin(name); ok {
		return r.builtinCommand(builtin, name, args), nil
	}

	dir, ok := r.Resolver.Resolve(name)
	if !ok {
		return nil, &NotFoundError{Name: name}
	}

	return r.externalCommand(name, vos.JoinPath(dir, name), args), nil
}

func (r *Registry) builtinCommand(builtin Builtin, name string, args []string) *Command {
	cmd := &Command{
		Name:    name,
		Args:    args,
		Kind:    KindBuiltin,
		Builtin: builtin,
	}

	switch builtin {
	case BuiltinExit:
		cmd.TerminatesLoop = true
		cmd.action = func(context.Context, vos.VIO) error {
			return nil
		}
	case BuiltinEcho:
		cmd.action = func(_ context.Context, vio vos.VIO) error {
			_, err := fmt.Fprintln(vio.Stdout(), strings.Join(args, " "))
			return err
		}
	case BuiltinType:
		cmd.action = func(_ context.Context, vio vos.VIO) error {
			return r.describe(vio.Stdout(), args)
		}
	default:
		panic(fmt.Sprintf("unhandled builtin %v", builtin))
	}

	return cmd
}

// describe implements type: it reports how the first argument would be
// resolved.
func (r *Registry) describe(w io.Writer, args []string) error {
	if len(args) == 0 {
		return nil
	}

	target := args[0]
	cmd, err := r.Resolve(target, nil)
	if err != nil {
		return err
	}

	switch cmd.Kind {
	case KindBuiltin:
		_, err = fmt.Fprintf(w, "%s is a shell builtin\n", target)
	case KindExternal:
		_, err = fmt.Fprintf(w, "%s is %s\n", target, cmd.Path)
	}
	return err
}

func (r *Registry) externalCommand(name, path string, args []string) *Command {
	cmd := &Command{
		Name: name,
		Args: args,
		Kind: KindExternal,
		Path: path,
	}

	cmd.action = func(ctx context.Context, vio vos.VIO) error {
		argv := cmd.Argv()
		res, err := r.Runner.Run(ctx, path, argv)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		out := res.Output()
		r.events().ProcessExit(argv, res.ExitCode, len(out))

		_, err = vio.Stdout().Write(out)
		return err
	}

	return cmd
}
