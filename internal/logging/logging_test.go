// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, LevelInfo, cfg.Level)
	assert.NotNil(t, cfg.Output)
	assert.False(t, cfg.JSON)
	assert.False(t, cfg.Development)
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, LevelDebug, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestLogger_ConsoleKeyValues(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Output: &buf}).WithComponent("sync")

	logger.Info("Document updated", "path", "doc/usage/al2.md", "added", 2)
	logger.Debug("Hidden below info")

	out := buf.String()
	assert.Contains(t, out, "Document updated")
	assert.Contains(t, out, `"component": "sync"`)
	assert.Contains(t, out, `"path": "doc/usage/al2.md"`)
	assert.NotContains(t, out, "Hidden below info")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelDebug, Output: &buf, JSON: true})

	logger.Warn("Default changed", "variable", "ami_name")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "Default changed", entry["msg"])
	assert.Equal(t, "ami_name", entry["variable"])
	_, hasTime := entry["ts"]
	assert.False(t, hasTime, "timestamps are disabled outside development mode")
}

func TestSetDefault(t *testing.T) {
	prev := Default()
	t.Cleanup(func() { SetDefault(prev) })

	var buf bytes.Buffer
	SetDefault(New(Config{Level: LevelInfo, Output: &buf}))

	Info("Using job file", "path", "vardoc.hcl")
	Error("Table failed", "table", "al2")

	out := buf.String()
	assert.Contains(t, out, "Using job file")
	assert.Contains(t, out, "Table failed")
	assert.Contains(t, out, "logging_test.go", "caller should point at the test, not the logging package")

	SetDefault(nil)
	assert.NotNil(t, Default())
}
