// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package doctable

import (
	"grimm.is/vardoc/internal/varset"
)

// Result is the outcome of Sync.
type Result struct {
	Document string
	Changed  bool
	Report   Report
}

// DefaultChange records a default cell that renders differently than before.
type DefaultChange struct {
	Name     string
	Previous string
	Current  string
}

// Report summarizes how the table changed.
type Report struct {
	// Added lists declared variables that had no previous row.
	Added []string
	// Removed lists previous rows whose variable is no longer declared.
	Removed []string
	// DefaultChanged is only populated for three-column tables.
	DefaultChanged []DefaultChange
	// Undocumented lists declared variables rendered with a blank description.
	Undocumented []string
}

// Empty reports whether nothing was added, removed or changed.
func (r Report) Empty() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0 && len(r.DefaultChanged) == 0
}

// Sync rewrites the region bounded by marker so that it lists exactly the
// variables of set. Either the complete new document is returned or an
// error; doc is never partially rewritten.
func Sync(doc, marker string, set *varset.DeclaredSet, shape Shape) (*Result, error) {
	ex, err := Extract(doc, marker, shape)
	if err != nil {
		return nil, err
	}

	region, err := Render(set, ex.Index, shape)
	if err != nil {
		return nil, err
	}

	out := doc[:ex.Span.Start] + region + doc[ex.Span.End:]
	return &Result{
		Document: out,
		Changed:  out != doc,
		Report:   buildReport(set, ex),
	}, nil
}

func buildReport(set *varset.DeclaredSet, ex *Extraction) Report {
	var r Report

	for _, e := range set.Entries() {
		if !ex.Index.Has(e.Name) {
			r.Added = append(r.Added, e.Name)
		}
		if ex.Index.Description(e.Name) == "" {
			r.Undocumented = append(r.Undocumented, e.Name)
		}
		if ex.Shape != ThreeColumn {
			continue
		}
		prev, ok := ex.Index.Defaults[e.Name]
		if cur := RenderDefault(e.Default); ok && prev != cur {
			r.DefaultChanged = append(r.DefaultChanged, DefaultChange{Name: e.Name, Previous: prev, Current: cur})
		}
	}

	seen := make(map[string]bool)
	for _, row := range ex.Rows {
		if !set.Has(row.Name) && !seen[row.Name] {
			seen[row.Name] = true
			r.Removed = append(r.Removed, row.Name)
		}
	}

	return r
}
