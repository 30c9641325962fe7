// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package doctable

import (
	"strings"

	"grimm.is/vardoc/internal/errors"
)

// Row is one parsed table row.
type Row struct {
	// Line is the 1-based line number in the document.
	Line        int
	Name        string
	Default     string
	Description string
}

// Index is the state recovered from a previous table.
type Index struct {
	// Descriptions maps variable name to its human-written description.
	Descriptions map[string]string
	// Defaults maps variable name to the previously rendered default cell.
	// It is empty for two-column tables.
	Defaults map[string]string
}

// Description returns the recorded description for name, or "".
func (ix Index) Description(name string) string {
	return ix.Descriptions[name]
}

// Has reports whether name had a row in the previous table.
func (ix Index) Has(name string) bool {
	_, ok := ix.Descriptions[name]
	return ok
}

// Extraction is the result of parsing a document's region.
type Extraction struct {
	Span  Span
	Shape Shape
	Rows  []Row
	Index Index
}

// Extract locates the region bounded by marker and parses the table in it.
//
// Blank lines are ignored. The first two remaining lines are the header and
// separator; each later line is a row of exactly shape.Columns() cells. A
// region containing nothing but blank lines yields an empty index.
func Extract(doc, marker string, shape Shape) (*Extraction, error) {
	if err := shape.valid(); err != nil {
		return nil, err
	}

	span, err := Locate(doc, marker)
	if err != nil {
		return nil, err
	}

	ex := &Extraction{
		Span:  span,
		Shape: shape,
		Index: Index{
			Descriptions: make(map[string]string),
			Defaults:     make(map[string]string),
		},
	}

	type numbered struct {
		line int
		text string
	}
	var lines []numbered
	// The region starts on the opening marker's line, so its first
	// (empty) segment is that line's remainder.
	for i, text := range strings.Split(doc[span.Start:span.End], "\n") {
		if strings.TrimSpace(text) != "" {
			lines = append(lines, numbered{line: span.Line + i, text: text})
		}
	}
	if len(lines) == 0 {
		return ex, nil
	}

	malformed := func(line int, format string, args ...any) error {
		err := errors.Errorf(errors.KindMalformedRegion, format, args...)
		err = errors.Attr(err, "marker", strings.TrimSpace(marker))
		return errors.Attr(err, "line", line)
	}

	cols := shape.Columns()
	header := splitRow(lines[0].text)
	if len(header) != cols {
		return nil, malformed(lines[0].line, "header has %d columns, want %d for a %s table", len(header), cols, shape)
	}
	if len(lines) < 2 {
		return nil, malformed(lines[0].line, "header is not followed by a separator row")
	}
	sep := splitRow(lines[1].text)
	if len(sep) != cols || !isSeparator(sep) {
		return nil, malformed(lines[1].line, "invalid separator row %q", strings.TrimSpace(lines[1].text))
	}

	for _, l := range lines[2:] {
		cells := splitRow(l.text)
		if len(cells) != cols {
			return nil, malformed(l.line, "row has %d cells, want %d for a %s table", len(cells), cols, shape)
		}

		row := Row{
			Line:        l.line,
			Name:        canonicalName(cells[0]),
			Description: strings.TrimSpace(cells[cols-1]),
		}
		if shape == ThreeColumn {
			row.Default = strings.TrimSpace(cells[1])
		}
		if row.Name == "" {
			continue
		}

		ex.Rows = append(ex.Rows, row)
		ex.Index.Descriptions[row.Name] = row.Description
		if shape == ThreeColumn {
			ex.Index.Defaults[row.Name] = row.Default
		}
	}

	return ex, nil
}
