// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package doctable keeps a Markdown table of template variables in sync with
// a declared variable set.
//
// The table lives in a region of a larger document bounded by two identical
// marker lines:
//
//	<!-- template-variable-table-boundary -->
//	| Variable | Description |
//	| - | - |
//	| `ami_name` | Name of the AMI |
//	<!-- template-variable-table-boundary -->
//
// Sync re-renders the rows from the declared set in declaration order and
// carries over the description column for every variable that is still
// declared. Everything outside the region, including the marker lines
// themselves, is left byte-for-byte untouched.
package doctable
