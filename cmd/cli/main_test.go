package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ShouldExit(t *testing.T) {
	// The "-h" (help) flag should cause cli.Parse to return shouldExit=true.
	out := &bytes.Buffer{}
	err := run(out, []string{"-h"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Usage:")
}

func TestRun_BuildsExperiment(t *testing.T) {
	document := `
test: coucou
second:
  - $VAR
  - $test
`
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "experiment.yaml")
	require.NoError(t, os.WriteFile(filePath, []byte(document), 0600))

	out := &bytes.Buffer{}
	err := run(out, []string{"-log-level", "error", filePath})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "test = string")
	assert.Contains(t, out.String(), "second = []interface {}")
}

func TestRun_InvalidFlagValue(t *testing.T) {
	out := &bytes.Buffer{}
	err := run(out, []string{"-log-format", "xml", "experiment.yaml"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "log-format"))
}

func TestRun_UnsupportedDocument(t *testing.T) {
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "experiment.ini")
	require.NoError(t, os.WriteFile(filePath, []byte("a=1"), 0600))

	out := &bytes.Buffer{}
	err := run(out, []string{"-log-level", "error", filePath})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported experiment document format")
}
