// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package config

import (
	"strings"

	"grimm.is/vardoc/internal/errors"
)

// Validate checks the job file for structural problems.
func (c *Config) Validate() error {
	if len(c.Tables) == 0 {
		return errors.New(errors.KindValidation, "no table blocks defined")
	}

	seen := make(map[string]bool)
	for _, t := range c.Tables {
		if seen[t.Name] {
			return errors.Errorf(errors.KindValidation, "duplicate table %q", t.Name)
		}
		seen[t.Name] = true

		if err := t.Validate(); err != nil {
			return errors.Attr(err, "table", t.Name)
		}
	}
	return nil
}

// Validate checks a single table.
func (t Table) Validate() error {
	if len(t.TemplatePaths()) == 0 {
		return errors.New(errors.KindValidation, "template or templates is required")
	}
	if strings.TrimSpace(t.Document) == "" {
		return errors.New(errors.KindValidation, "document is required")
	}
	if t.Marker != "" && strings.TrimSpace(t.Marker) == "" {
		return errors.New(errors.KindValidation, "marker must not be blank")
	}
	if t.Columns != 0 {
		if _, err := t.Shape(); err != nil {
			return err
		}
	}
	return nil
}
