package commands

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/josephlewis42/minish/core/vos"
	"github.com/josephlewis42/minish/core/vos/vostest"
	"github.com/stretchr/testify/assert"
)

func TestRegistry_Resolve(t *testing.T) {
	tos := newTestOS()
	registry := NewRegistry(tos.Resolver(), tos)

	cases := map[string]struct {
		name        string
		wantKind    Kind
		wantBuiltin Builtin
		wantPath    string
		wantExit    bool
	}{
		"exit":           {name: "exit", wantKind: KindBuiltin, wantBuiltin: BuiltinExit, wantExit: true},
		"echo":           {name: "echo", wantKind: KindBuiltin, wantBuiltin: BuiltinEcho},
		"type":           {name: "type", wantKind: KindBuiltin, wantBuiltin: BuiltinType},
		"external":       {name: "cat", wantKind: KindExternal, wantPath: "/bin/cat"},
		"first-path-dir": {name: "ls", wantKind: KindExternal, wantPath: "/usr/bin/ls"},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cmd, err := registry.Resolve(tc.name, []string{"arg"})

			assert.NoError(t, err)
			assert.Equal(t, tc.name, cmd.Name)
			assert.Equal(t, []string{tc.name, "arg"}, cmd.Argv())
			assert.Equal(t, tc.wantKind, cmd.Kind)
			assert.Equal(t, tc.wantBuiltin, cmd.Builtin)
			assert.Equal(t, tc.wantPath, cmd.Path)
			assert.Equal(t, tc.wantExit, cmd.TerminatesLoop)
		})
	}
}

func TestRegistry_Resolve_notFound(t *testing.T) {
	for _, path := range []string{"", "/usr/bin:/bin", "/nonexistent"} {
		t.Run(path, func(t *testing.T) {
			tos := newTestOS().SetPath(path)
			registry := NewRegistry(tos.Resolver(), tos)

			cmd, err := registry.Resolve("nope", nil)

			assert.Nil(t, cmd)
			assert.ErrorIs(t, err, ErrCommandNotFound)
			var nfe *NotFoundError
			if assert.True(t, errors.As(err, &nfe)) {
				assert.Equal(t, "nope", nfe.Name)
			}
			assert.EqualError(t, err, "nope: not found")
		})
	}
}

func TestRegistry_builtinsShadowPath(t *testing.T) {
	tos := newTestOS().
		AddExecutable("/usr/bin/echo", vostest.Echo).
		AddExecutable("/usr/bin/type", vostest.Echo)
	registry := NewRegistry(tos.Resolver(), tos)

	for _, name := range []string{"echo", "type"} {
		cmd, err := registry.Resolve(name, nil)
		assert.NoError(t, err)
		assert.Equal(t, KindBuiltin, cmd.Kind, name)
	}
}

// run resolves and runs a command, returning its output.
func run(t *testing.T, registry *Registry, name string, args ...string) (string, error) {
	t.Helper()

	cmd, err := registry.Resolve(name, args)
	if err != nil {
		return "", err
	}

	out := &bytes.Buffer{}
	err = cmd.Run(context.Background(), vos.NewVIOAdapter(nil, out, out))
	return out.String(), err
}

func TestEcho(t *testing.T) {
	registry := NewRegistry(newTestOS().Resolver(), nil)

	cases := map[string]struct {
		args []string
		want string
	}{
		"no-args":   {nil, "\n"},
		"one":       {[]string{"hello"}, "hello\n"},
		"ordered":   {[]string{"a", "b", "c"}, "a b c\n"},
		"no-flags":  {[]string{"-n", "x"}, "-n x\n"},
		"no-escape": {[]string{`a\nb`}, `a\nb` + "\n"},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			for i := 0; i < 2; i++ {
				out, err := run(t, registry, "echo", tc.args...)
				assert.NoError(t, err)
				assert.Equal(t, tc.want, out)
			}
		})
	}
}

func TestExit(t *testing.T) {
	registry := NewRegistry(newTestOS().Resolver(), nil)

	out, err := run(t, registry, "exit", "3")
	assert.NoError(t, err)
	assert.Empty(t, out)
}

func TestType(t *testing.T) {
	tos := newTestOS()
	registry := NewRegistry(tos.Resolver(), tos)

	cases := map[string]struct {
		args    []string
		want    string
		wantErr string
	}{
		"exit":             {args: []string{"exit"}, want: "exit is a shell builtin\n"},
		"echo":             {args: []string{"echo"}, want: "echo is a shell builtin\n"},
		"type":             {args: []string{"type"}, want: "type is a shell builtin\n"},
		"external":         {args: []string{"cat"}, want: "cat is /bin/cat\n"},
		"first-match-wins": {args: []string{"ls"}, want: "ls is /usr/bin/ls\n"},
		"only-first-arg":   {args: []string{"cat", "echo"}, want: "cat is /bin/cat\n"},
		"no-args":          {args: nil, want: ""},
		"not-found":        {args: []string{"nope"}, wantErr: "nope: not found"},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			out, err := run(t, registry, "type", tc.args...)

			assert.Equal(t, tc.want, out)
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tc.wantErr)
				assert.ErrorIs(t, err, ErrCommandNotFound)
			}
		})
	}

	assert.Empty(t, tos.Calls(), "type must never run anything")
}

func TestType_scenarios(t *testing.T) {
	t.Run("path-order", func(t *testing.T) {
		tos := vostest.New().SetPath("/usr/bin:/bin").AddExecutable("/usr/bin/ls", listFiles)

		out, err := run(t, NewRegistry(tos.Resolver(), tos), "type", "ls")
		assert.NoError(t, err)
		assert.Equal(t, "ls is /usr/bin/ls\n", out)
	})

	t.Run("empty-path", func(t *testing.T) {
		tos := vostest.New().SetPath("").AddExecutable("/usr/bin/ls", listFiles)

		_, err := run(t, NewRegistry(tos.Resolver(), tos), "type", "ls")
		assert.EqualError(t, err, "ls: not found")
	})
}

func TestExternal(t *testing.T) {
	tos := newTestOS()
	events := &fakeRecorder{}
	registry := NewRegistry(tos.Resolver(), tos)
	registry.Events = events

	t.Run("stdout", func(t *testing.T) {
		out, err := run(t, registry, "ls", "-l")
		assert.NoError(t, err)
		assert.Equal(t, "file1\nfile2\n", out)
	})

	t.Run("argv", func(t *testing.T) {
		out, err := run(t, registry, "cat", "a", "b")
		assert.NoError(t, err)
		assert.Equal(t, "cat a b\n", out)
	})

	t.Run("stderr-when-no-stdout", func(t *testing.T) {
		out, err := run(t, registry, "false")
		assert.NoError(t, err, "non-zero exits aren't shell errors")
		assert.Equal(t, "false: failed\n", out)
	})

	t.Run("no-output", func(t *testing.T) {
		out, err := run(t, registry, "true")
		assert.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("spawn-failure", func(t *testing.T) {
		tos.AddFile("/usr/bin/ghost", 0755)

		_, err := run(t, registry, "ghost")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "ghost: ")
		assert.NotErrorIs(t, err, ErrCommandNotFound)
	})

	assert.Equal(t, [][]string{
		{"ls", "-l"},
		{"cat", "a", "b"},
		{"false"},
		{"true"},
		{"ghost"},
	}, tos.Calls())
	assert.Equal(t, []int{0, 0, 1, 0}, events.exits)
}

func TestRegistry_relativePathEntry(t *testing.T) {
	tos := vostest.New().
		SetPath(".:/usr/bin").
		AddExecutable("./hello", vostest.Echo).
		AddExecutable("/usr/bin/hello", silent)
	registry := NewRegistry(tos.Resolver(), tos)

	out, err := run(t, registry, "type", "hello")
	assert.NoError(t, err)
	assert.Equal(t, "hello is ./hello\n", out)

	out, err = run(t, registry, "hello", "world")
	assert.NoError(t, err)
	assert.Equal(t, "hello world\n", out)
	assert.Equal(t, [][]string{{"hello", "world"}}, tos.Calls())
}
