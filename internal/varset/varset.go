// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package varset builds the authoritative, ordered set of template variables
// and their current defaults.
package varset

import (
	"strings"

	"grimm.is/vardoc/internal/errors"
)

// Default is the default value of a variable. The zero value is absent.
// An explicit empty string is distinct from absent.
type Default struct {
	Value string
	Set   bool
}

// Absent returns a Default meaning "no default".
func Absent() Default {
	return Default{}
}

// Value returns a Default holding v, which may be empty.
func Value(v string) Default {
	return Default{Value: v, Set: true}
}

// IsAbsent reports whether no default is declared.
func (d Default) IsAbsent() bool {
	return !d.Set
}

// IsEmpty reports whether the default is an explicit empty string.
func (d Default) IsEmpty() bool {
	return d.Set && d.Value == ""
}

func (d Default) String() string {
	if !d.Set {
		return "<absent>"
	}
	return d.Value
}

// Entry pairs a variable name with its default.
type Entry struct {
	Name    string
	Default Default
}

// Source is one already-decoded variable source. Names declares variables
// without defaults; Defaults assigns (or introduces) values.
type Source struct {
	// Name identifies the source in errors, usually its path.
	Name     string
	Names    []string
	Defaults []Entry
}

// DeclaredSet is an ordered mapping of variable name to default.
// It is not modified after Load returns.
type DeclaredSet struct {
	names  []string
	values map[string]Default
}

// Load merges sources into a DeclaredSet.
//
// Every declared name of every source is added first with an absent default,
// keeping the first occurrence. Defaults entries are then applied in order:
// known names have their value replaced, unknown names are appended.
func Load(sources ...Source) (*DeclaredSet, error) {
	set := &DeclaredSet{values: make(map[string]Default)}

	for _, src := range sources {
		for i, name := range src.Names {
			if err := checkName(name, src.Name, i); err != nil {
				return nil, err
			}
			set.declare(name)
		}
	}

	for _, src := range sources {
		for i, e := range src.Defaults {
			if err := checkName(e.Name, src.Name, i); err != nil {
				return nil, err
			}
			set.declare(e.Name)
			set.values[e.Name] = e.Default
		}
	}

	return set, nil
}

// checkName rejects names that cannot be written as a table name cell and
// read back unchanged.
func checkName(name, source string, index int) error {
	var err error
	switch {
	case strings.TrimSpace(name) == "":
		err = errors.Errorf(errors.KindMalformedSource, "empty variable name at index %d", index)
	case strings.TrimSpace(name) != name:
		err = errors.Errorf(errors.KindMalformedSource, "variable name %q at index %d has surrounding whitespace", name, index)
	case strings.ContainsAny(name, "|`\r\n"):
		err = errors.Errorf(errors.KindMalformedSource, "variable name %q at index %d contains a pipe, backtick or line break", name, index)
	default:
		return nil
	}
	return errors.Attr(err, "source", source)
}

func (s *DeclaredSet) declare(name string) {
	if _, ok := s.values[name]; ok {
		return
	}
	s.names = append(s.names, name)
	s.values[name] = Absent()
}

// Len returns the number of variables.
func (s *DeclaredSet) Len() int {
	return len(s.names)
}

// Names returns the variable names in declaration order.
func (s *DeclaredSet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Has reports whether name is declared.
func (s *DeclaredSet) Has(name string) bool {
	_, ok := s.values[name]
	return ok
}

// Get returns the default for name.
func (s *DeclaredSet) Get(name string) (Default, bool) {
	d, ok := s.values[name]
	return d, ok
}

// Entries returns name/default pairs in declaration order.
func (s *DeclaredSet) Entries() []Entry {
	out := make([]Entry, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, Entry{Name: name, Default: s.values[name]})
	}
	return out
}
