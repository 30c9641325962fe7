// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package config

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"grimm.is/vardoc/internal/errors"
)

// LoadFile loads and validates a job file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		kind := errors.KindInternal
		if errors.Is(err, fs.ErrNotExist) {
			kind = errors.KindValidation
		}
		return nil, errors.Attr(errors.Wrap(err, kind, "failed to read job file"), "path", path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.KindInternal, "failed to resolve job file path")
	}
	return LoadFromBytes(path, data, filepath.Dir(abs))
}

// LoadFromBytes decodes a job file. filename selects the syntax (".hcl" or
// ".json") and appears in diagnostics; baseDir anchors relative paths.
func LoadFromBytes(filename string, data []byte, baseDir string) (*Config, error) {
	var cfg Config
	if err := hclsimple.Decode(filename, data, nil, &cfg); err != nil {
		return nil, errors.Attr(errors.Wrap(err, errors.KindValidation, "failed to decode job file"), "path", filename)
	}
	cfg.BaseDir = baseDir

	if err := cfg.Validate(); err != nil {
		return nil, errors.Attr(err, "path", filename)
	}
	return &cfg, nil
}
