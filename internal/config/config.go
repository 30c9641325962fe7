// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package config describes vardoc jobs: which template sources feed which
// documentation table.
//
// A job file is HCL:
//
//	marker = "<!-- template-variable-table-boundary -->"
//
//	table "al2023" {
//	  template = "../templates/al2023/template.json"
//	  defaults = ["../templates/al2023/variables-default.json"]
//	  document = "../doc/usage/al2023.md"
//	  columns  = 3
//	}
//
// Relative paths resolve against the directory of the job file.
package config

import (
	"path/filepath"

	"grimm.is/vardoc/internal/doctable"
)

// DefaultMarker bounds the variable table when neither the table nor the
// job file sets a marker.
const DefaultMarker = "<!-- template-variable-table-boundary -->"

// DefaultFile is the job file looked up in the working directory.
const DefaultFile = "vardoc.hcl"

// Config is a decoded job file.
type Config struct {
	// Marker is the default marker for every table.
	Marker string  `hcl:"marker,optional"`
	Tables []Table `hcl:"table,block"`

	// BaseDir is the directory relative paths resolve against.
	BaseDir string
}

// Table is one document table to keep in sync.
type Table struct {
	Name string `hcl:"name,label"`
	// Template is a single template source; Templates adds more.
	Template  string   `hcl:"template,optional"`
	Templates []string `hcl:"templates,optional"`
	Defaults  []string `hcl:"defaults,optional"`
	Document  string   `hcl:"document"`
	Marker    string   `hcl:"marker,optional"`
	// Columns is 2 or 3; zero picks 3 when defaults are configured, else 2.
	Columns int `hcl:"columns,optional"`
}

// TemplatePaths returns every template source in declaration order.
func (t Table) TemplatePaths() []string {
	var paths []string
	if t.Template != "" {
		paths = append(paths, t.Template)
	}
	return append(paths, t.Templates...)
}

// Shape returns the table's column shape.
func (t Table) Shape() (doctable.Shape, error) {
	return doctable.ParseShape(t.Columns)
}

// Resolve fills table defaults from the job file and makes paths absolute
// relative to BaseDir. The receiver is not modified.
func (c *Config) Resolve() []Table {
	out := make([]Table, 0, len(c.Tables))
	for _, t := range c.Tables {
		out = append(out, c.resolveTable(t))
	}
	return out
}

func (c *Config) resolveTable(t Table) Table {
	if t.Marker == "" {
		t.Marker = c.Marker
	}
	if t.Marker == "" {
		t.Marker = DefaultMarker
	}
	if t.Columns == 0 {
		t.Columns = int(doctable.TwoColumn)
		if len(t.Defaults) > 0 {
			t.Columns = int(doctable.ThreeColumn)
		}
	}

	t.Template = c.path(t.Template)
	t.Templates = c.paths(t.Templates)
	t.Defaults = c.paths(t.Defaults)
	t.Document = c.path(t.Document)
	return t
}

func (c *Config) path(p string) string {
	if p == "" || filepath.IsAbs(p) || c.BaseDir == "" {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

func (c *Config) paths(ps []string) []string {
	if ps == nil {
		return nil
	}
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = c.path(p)
	}
	return out
}
