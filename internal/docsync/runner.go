// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package docsync runs configured tables: it loads the variable sources,
// syncs the document text and writes it back, or reports drift in check mode.
package docsync

import (
	"io/fs"
	"os"
	"strings"

	"grimm.is/vardoc/internal/config"
	"grimm.is/vardoc/internal/doctable"
	"grimm.is/vardoc/internal/errors"
	"grimm.is/vardoc/internal/logging"
	"grimm.is/vardoc/internal/source"
	"grimm.is/vardoc/internal/varset"
)

// Options configures a Runner.
type Options struct {
	// Check computes results without writing and fails on drift.
	Check  bool
	Logger *logging.Logger
}

// Outcome describes what happened to one table.
type Outcome struct {
	Table    string
	Document string
	Changed  bool
	Written  bool
	// Diff is the unified diff of the document, set in check mode.
	Diff   string
	Report doctable.Report
}

// Runner executes tables one after another.
type Runner struct {
	check bool
	log   *logging.Logger
}

// NewRunner creates a Runner.
func NewRunner(opts Options) *Runner {
	log := opts.Logger
	if log == nil {
		log = logging.WithComponent("docsync")
	}
	return &Runner{check: opts.Check, log: log}
}

// Run processes tables in order and stops at the first failing table.
// In check mode every table is inspected and a KindOutOfDate error names
// the documents that would change.
func (r *Runner) Run(tables []config.Table) ([]Outcome, error) {
	var outcomes []Outcome
	var stale []string

	for _, t := range tables {
		out, err := r.RunTable(t)
		if err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, out)
		if r.check && out.Changed {
			stale = append(stale, t.Document)
		}
	}

	if len(stale) > 0 {
		err := errors.Errorf(errors.KindOutOfDate, "%d document(s) out of date: %s", len(stale), strings.Join(stale, ", "))
		return outcomes, err
	}
	return outcomes, nil
}

// RunTable syncs a single resolved table.
func (r *Runner) RunTable(t config.Table) (Outcome, error) {
	out, err := r.runTable(t)
	if err != nil {
		err = errors.Attr(err, "table", t.Name)
	}
	return out, err
}

func (r *Runner) runTable(t config.Table) (Outcome, error) {
	out := Outcome{Table: t.Name, Document: t.Document}
	log := r.log.With("table", t.Name)

	if err := t.Validate(); err != nil {
		return out, err
	}
	shape, err := t.Shape()
	if err != nil {
		return out, err
	}

	set, err := loadSet(t)
	if err != nil {
		return out, err
	}
	log.Debug("Loaded declared variables", "count", set.Len())

	data, err := os.ReadFile(t.Document)
	if err != nil {
		kind := errors.KindInternal
		if errors.Is(err, fs.ErrNotExist) {
			kind = errors.KindValidation
		}
		return out, errors.Attr(errors.Wrap(err, kind, "failed to read document"), "path", t.Document)
	}
	before := string(data)

	res, err := doctable.Sync(before, t.Marker, set, shape)
	if err != nil {
		return out, errors.Attr(err, "path", t.Document)
	}
	out.Changed = res.Changed
	out.Report = res.Report
	logReport(log, res.Report)

	switch {
	case !res.Changed:
		log.Info("Document up to date", "path", t.Document)
	case r.check:
		out.Diff = doctable.Diff(t.Document, before, res.Document)
		log.Warn("Document out of date", "path", t.Document)
	default:
		if err := WriteFileAtomic(t.Document, []byte(res.Document)); err != nil {
			return out, errors.Attr(errors.Wrap(err, errors.KindInternal, "failed to write document"), "path", t.Document)
		}
		out.Written = true
		log.Info("Document updated", "path", t.Document, "variables", set.Len())
	}
	return out, nil
}

func loadSet(t config.Table) (*varset.DeclaredSet, error) {
	var sources []varset.Source
	for _, p := range t.TemplatePaths() {
		src, err := source.ReadFile(p, source.RoleTemplate)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	for _, p := range t.Defaults {
		src, err := source.ReadFile(p, source.RoleDefaults)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return varset.Load(sources...)
}

func logReport(log *logging.Logger, rep doctable.Report) {
	if len(rep.Added) > 0 {
		log.Info("Variables added", "variables", rep.Added)
	}
	if len(rep.Removed) > 0 {
		log.Info("Variables removed", "variables", rep.Removed)
	}
	for _, c := range rep.DefaultChanged {
		log.Info("Default changed", "variable", c.Name, "previous", c.Previous, "current", c.Current)
	}
	if len(rep.Undocumented) > 0 {
		log.Warn("Variables without description", "variables", rep.Undocumented)
	}
}
