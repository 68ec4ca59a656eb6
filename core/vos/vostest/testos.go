// Package vostest holds helpers for tests that start real stage processes.
package vostest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/josephlewis42/digenv/core/vos"
	"github.com/spf13/afero"
)

// SystemPath is the PATH handed to stages in tests so output that includes the
// environment stays stable across machines.
const SystemPath = "/usr/bin:/bin"

// NewHostOS creates a VOS over the real filesystem with exactly the given
// environment, nothing is inherited from the test process.
func NewHostOS(env ...string) vos.VOS {
	return vos.New(afero.NewOsFs(), vos.NewMapEnvFromEnvList(env))
}

// RequireTools skips the test unless every tool can be found on SystemPath and
// returns their resolved paths keyed by name.
func RequireTools(t *testing.T, tools ...string) map[string]string {
	t.Helper()

	virtOS := NewHostOS("PATH=" + SystemPath)
	out := make(map[string]string)
	for _, tool := range tools {
		path, err := vos.LookPath(virtOS, tool)
		if err != nil {
			t.Skipf("%s not found on %s: %v", tool, SystemPath, err)
		}
		out[tool] = path
	}

	return out
}

// Script writes an executable /bin/sh script named name into dir and returns
// its path.
func Script(t *testing.T, dir, name, body string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755); err != nil {
		t.Fatal(err)
	}

	return path
}
