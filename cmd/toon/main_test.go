package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnomei/serde-toon-sub001/toon"
)

func TestRunEncodesJSONFileToOutputFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"alice","age":30}`), 0o644))

	outPath := filepath.Join(dir, "out.toon")

	cfg := NewConfig()
	cfg.Output = outPath

	err := run(cfg, []string{path})
	require.NoError(t, err)

	got, err := os.ReadFile(outPath)
	require.NoError(t, err)

	decoded, err := toon.Decode(string(got), toon.DefaultDecodeOptions())
	require.NoError(t, err)

	obj, ok := decoded.(*toon.Object)
	require.True(t, ok)

	name, _ := obj.Get("name")
	assert.Equal(t, "alice", name)
}

func TestRunStatsSummary(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.toon")
	require.NoError(t, os.WriteFile(path, []byte("a: 1\nb: 2\n"), 0o644))

	outPath := filepath.Join(dir, "out.txt")

	cfg := NewConfig()
	cfg.Output = outPath
	cfg.Stats = true

	err := run(cfg, []string{path})
	require.NoError(t, err)

	got, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(got), "doc.toon")
	assert.Contains(t, string(got), "decode")
}

func TestRunRejectsUnknownExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	cfg := NewConfig()
	cfg.Output = filepath.Join(dir, "out.txt")

	err := run(cfg, []string{path})
	require.ErrorIs(t, err, ErrUnsupportedExtension)
}

func TestSetupLoggingDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"

	require.NoError(t, setupLogging(cfg))
}

func TestVersionCommandOutput(t *testing.T) {
	t.Parallel()

	cmd := newVersionCommand()

	var buf bytes.Buffer
	cmd.SetOut(&buf)

	require.NoError(t, cmd.RunE(cmd, nil))
	assert.Contains(t, buf.String(), "toon")
}
