// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package source decodes template and defaults files into varset sources.
//
// Supported formats, chosen by file extension:
//   - .json, .yaml, .yml: a template is a mapping with a "variables" key
//     holding a list of names (or a mapping whose keys are names); a defaults
//     file is a mapping of name to value.
//   - .hcl (including .pkr.hcl and .pkrvars.hcl): a template declares
//     `variable "name" { default = ... }` blocks; a defaults file holds
//     top-level `name = value` attributes.
//
// Declaration order is preserved in every format.
package source

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"grimm.is/vardoc/internal/errors"
	"grimm.is/vardoc/internal/varset"
)

// Role selects how a file is interpreted.
type Role int

const (
	// RoleTemplate reads declared variable names (and HCL defaults).
	RoleTemplate Role = iota
	// RoleDefaults reads a name to default value mapping.
	RoleDefaults
)

func (r Role) String() string {
	if r == RoleDefaults {
		return "defaults"
	}
	return "template"
}

// Format is a source encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatHCL
)

// DetectFormat picks the format from path's extension.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".hcl":
		return FormatHCL, nil
	}
	err := errors.Errorf(errors.KindMalformedSource, "unsupported source format %q", ext)
	return 0, errors.Attr(err, "path", path)
}

// ReadFile reads and decodes the source at path.
func ReadFile(path string, role Role) (varset.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		kind := errors.KindInternal
		if errors.Is(err, fs.ErrNotExist) {
			kind = errors.KindSourceNotFound
		}
		err = errors.Wrapf(err, kind, "failed to read %s source", role)
		return varset.Source{}, errors.Attr(err, "path", path)
	}
	return Decode(path, data, role)
}

// Decode decodes data, using path for format detection and error messages.
func Decode(path string, data []byte, role Role) (varset.Source, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return varset.Source{}, err
	}

	var src varset.Source
	switch format {
	case FormatHCL:
		src, err = decodeHCL(path, data, role)
	case FormatJSON:
		src, err = decodeJSON(path, data, role)
	default:
		src, err = decodeYAML(path, data, role)
	}
	if err != nil {
		return varset.Source{}, errors.Attr(err, "path", path)
	}
	return src, nil
}

func malformed(format string, args ...any) error {
	return errors.Errorf(errors.KindMalformedSource, format, args...)
}
