package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "supporters.html")
	t.Setenv("OUTPUT_PATH", out)
	t.Setenv("LOG_LEVEL", "error")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"render"})
	cmd.SetOut(&bytes.Buffer{})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Hall of Fame")
}

func TestCheckCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "supporters.html")
	t.Setenv("OUTPUT_PATH", out)
	t.Setenv("LOG_LEVEL", "fatal")

	render := newRootCmd()
	render.SetArgs([]string{"render"})
	require.NoError(t, render.Execute())

	check := newRootCmd()
	check.SetArgs([]string{"check"})
	assert.NoError(t, check.Execute())

	require.NoError(t, os.WriteFile(out, []byte(`<a href="#missing-id">gone</a>`), 0o600))

	check = newRootCmd()
	check.SetArgs([]string{"check"})
	assert.Error(t, check.Execute())
}

func TestRenderCommandBadDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tiers:\n  - name: a\n  - name: a\n"), 0o600))

	t.Setenv("DATASET_PATH", path)
	t.Setenv("OUTPUT_PATH", filepath.Join(t.TempDir(), "supporters.html"))
	t.Setenv("LOG_LEVEL", "fatal")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"render"})
	assert.Error(t, cmd.Execute())
}
