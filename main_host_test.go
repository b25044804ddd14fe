//go:build !tinygo

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linkscope.yaml")
	require.NoError(t, os.WriteFile(path, []byte("display:\n  width: 240\n"), 0o644))

	out, err := execute(t, "config", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "width: 240")
	assert.Contains(t, out, "height: 128")
	assert.Contains(t, out, path)
}

func TestConfigCommandInvalid(t *testing.T) {
	t.Setenv("LINKSCOPE_HEADLESS_HZ", "0")
	_, err := execute(t, "config")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "commit")
}

func TestHeadlessRun(t *testing.T) {
	_, err := execute(t, "--headless", "--listen=", "--hz=200", "--ticks=5", "--press-every=10ms")
	assert.NoError(t, err)
}
