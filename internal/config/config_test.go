// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedGettersFallBackToDefault(t *testing.T) {
	c := New()
	assert.Equal(t, "fallback", c.AsString("missing", "fallback"))
	assert.Equal(t, uint64(7), c.AsU64("missing", 7))
	assert.Equal(t, 1.5, c.AsF64("missing", 1.5))
}

func TestSetOverridesDefault(t *testing.T) {
	c := New()
	c.Set("STILLNESS_ACC_EVENT_NUMBER", "64")
	assert.Equal(t, uint64(64), c.AsU64("STILLNESS_ACC_EVENT_NUMBER", 16))
}

func TestMalformedValueFallsBackToDefault(t *testing.T) {
	c := New()
	c.Set("STILLNESS_ACC_VARIANCE_THRESHOLD", "not-a-number")
	assert.Equal(t, 0.01, c.AsF64("STILLNESS_ACC_VARIANCE_THRESHOLD", 0.01))
}

func TestLoadSkipsCommentsAndBlankLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.txt")
	contents := "# a comment\n\nSTILLNESS_ACC_EVENT_NUMBER = 8\n  # indented comment\nACC_EPSILON_ZERO=0.5\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	c := New()
	require.NoError(t, c.Load(path))

	assert.Equal(t, uint64(8), c.AsU64("STILLNESS_ACC_EVENT_NUMBER", 16))
	assert.Equal(t, 0.5, c.AsF64("ACC_EPSILON_ZERO", 0.07))
}

func TestLoadWithCustomCommentAndDelimiter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.txt")
	require.NoError(t, os.WriteFile(path, []byte("; ignored\nKEY : value\n"), 0o644))

	c := New()
	c.SetCommentMarker(";")
	c.SetDelimiter(":")
	require.NoError(t, c.Load(path))

	assert.Equal(t, "value", c.AsString("KEY", ""))
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	c := New()
	err := c.Load(filepath.Join(t.TempDir(), "does-not-exist.txt"))
	assert.Error(t, err)
}
