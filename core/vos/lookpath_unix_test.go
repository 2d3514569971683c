//go:build unix

package vos

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecRunner_relativePathEntry(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skipf("/bin/sh not available: %v", err)
	}

	dir := t.TempDir()
	script := "#!/bin/sh\necho hello from $0\n"
	if err := os.WriteFile(filepath.Join(dir, "hello"), []byte(script), 0755); err != nil {
		t.Fatal(err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	env := NewMapEnv()
	env.Setenv(EnvPath, ".:/usr/bin:/bin")

	path, err := NewPathResolver(env, NewHostChecker()).LookPath("hello")
	assert.NoError(t, err)
	assert.Equal(t, "./hello", path)

	res, err := (&ExecRunner{}).Run(context.Background(), path, []string{"hello"})
	assert.NoError(t, err)
	assert.Equal(t, "hello from ./hello\n", string(res.Stdout))
	assert.Equal(t, 0, res.ExitCode)
}
