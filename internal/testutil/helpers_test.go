// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package testutil

import (
	"path/filepath"
	"testing"
)

func TestWriteFiles(t *testing.T) {
	dir := WriteFiles(t, map[string]string{
		"a.txt":        "alpha",
		"nested/b.txt": "beta",
	})

	if got := ReadFile(t, filepath.Join(dir, "a.txt")); got != "alpha" {
		t.Errorf("expected alpha, got %q", got)
	}
	if got := ReadFile(t, filepath.Join(dir, "nested", "b.txt")); got != "beta" {
		t.Errorf("expected beta, got %q", got)
	}
}
