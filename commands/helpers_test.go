package commands

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/josephlewis42/minish/core/vos"
	"github.com/josephlewis42/minish/core/vos/vostest"
)

func listFiles(argv []string, stdout, stderr io.Writer) int {
	io.WriteString(stdout, "file1\nfile2\n")
	return 0
}

func shadowedLs(argv []string, stdout, stderr io.Writer) int {
	io.WriteString(stdout, "shadowed\n")
	return 0
}

func silent(argv []string, stdout, stderr io.Writer) int {
	return 0
}

// newTestOS builds the search path used across the tests:
//
//	/usr/bin: ls false true
//	/bin:     ls cat
func newTestOS() *vostest.TestOS {
	return vostest.New().
		SetPath("/usr/bin:/bin").
		AddExecutable("/usr/bin/ls", listFiles).
		AddExecutable("/bin/ls", shadowedLs).
		AddExecutable("/bin/cat", vostest.Echo).
		AddExecutable("/usr/bin/false", vostest.Fail).
		AddExecutable("/usr/bin/true", silent)
}

type fakeRecorder struct {
	runs     [][]string
	kinds    []string
	paths    []string
	unknowns [][]string
	exits    []int
}

var _ EventRecorder = (*fakeRecorder)(nil)

func (f *fakeRecorder) RunCommand(argv []string, kind, path string) {
	f.runs = append(f.runs, argv)
	f.kinds = append(f.kinds, kind)
	f.paths = append(f.paths, path)
}

func (f *fakeRecorder) UnknownCommand(argv []string) {
	f.unknowns = append(f.unknowns, argv)
}

func (f *fakeRecorder) ProcessExit(argv []string, exitCode, outputBytes int) {
	f.exits = append(f.exits, exitCode)
}

// runScript feeds input to a fresh shell and returns everything it wrote
// along with its exit status.
func runScript(t *testing.T, tos *vostest.TestOS, input string) (string, int) {
	t.Helper()

	out := &bytes.Buffer{}
	vio := vos.NewVIOAdapter(strings.NewReader(input), out, out)
	sh := NewShell(vio, NewRegistry(tos.Resolver(), tos), NewScannerReader(vio.Stdin(), vio.Stdout()))

	code := sh.Run(context.Background())
	return out.String(), code
}
