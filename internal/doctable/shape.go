// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package doctable

import (
	"fmt"

	"grimm.is/vardoc/internal/errors"
)

// Shape is the column layout of a variable table.
type Shape int

const (
	// TwoColumn tables hold name and description.
	TwoColumn Shape = 2
	// ThreeColumn tables hold name, default value and description.
	ThreeColumn Shape = 3
)

// ParseShape converts a column count into a Shape.
func ParseShape(columns int) (Shape, error) {
	switch Shape(columns) {
	case TwoColumn, ThreeColumn:
		return Shape(columns), nil
	default:
		return 0, errors.Errorf(errors.KindValidation, "unsupported column count %d (want 2 or 3)", columns)
	}
}

// Columns returns the number of cells per row.
func (s Shape) Columns() int {
	return int(s)
}

func (s Shape) String() string {
	switch s {
	case TwoColumn:
		return "two-column"
	case ThreeColumn:
		return "three-column"
	default:
		return fmt.Sprintf("invalid(%d)", int(s))
	}
}

func (s Shape) valid() error {
	_, err := ParseShape(int(s))
	return err
}

func (s Shape) header() []string {
	if s == ThreeColumn {
		return []string{"Variable", "Default value", "Description"}
	}
	return []string{"Variable", "Description"}
}
