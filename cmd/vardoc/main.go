// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// vardoc keeps the template-variable tables in documentation in sync with
// the variables declared by build templates.
//
// Usage:
//
//	vardoc sync                      # run every table in ./vardoc.hcl
//	vardoc check -c hack/vardoc.hcl  # fail and print a diff if a document is stale
//	vardoc sync --template templates/al2/template.json --document doc/usage/al2.md
package main

import (
	"os"

	"grimm.is/vardoc/internal/errors"
	"grimm.is/vardoc/internal/logging"
)

func main() {
	cmd := newRootCmd(os.Stdout)
	if err := cmd.Execute(); err != nil {
		kv := []any{"kind", errors.GetKind(err).String()}
		for k, v := range errors.GetAttributes(err) {
			kv = append(kv, k, v)
		}
		logging.Error(err.Error(), kv...)
		_ = logging.Default().Sync()
		os.Exit(1)
	}
	_ = logging.Default().Sync()
}
