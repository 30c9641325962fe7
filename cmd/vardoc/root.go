// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"grimm.is/vardoc/internal/config"
	"grimm.is/vardoc/internal/docsync"
	"grimm.is/vardoc/internal/errors"
	"grimm.is/vardoc/internal/logging"
)

type rootOptions struct {
	configFile string
	logLevel   string
	logJSON    bool
	dev        bool
	color      string

	// Ad-hoc table, used instead of the job file when document is set.
	name      string
	templates []string
	defaults  []string
	document  string
	marker    string
	columns   int
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "vardoc",
		Short: "Keep template variable tables in documentation up to date",
		Long: `vardoc reads the variables declared by build templates (JSON, YAML or
HCL) and regenerates the Markdown table between two marker lines in each
configured document. Descriptions already written for a variable are kept;
variables that are no longer declared are dropped.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setupLogging(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configFile, "config", "c", "", "Job file (default $VARDOC_CONFIG or ./"+config.DefaultFile+")")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (default $VARDOC_LOG_LEVEL or info)")
	pf.BoolVar(&opts.logJSON, "log-json", false, "Log in JSON")
	pf.BoolVarP(&opts.dev, "development", "d", false, "Enable development mode for logging")
	pf.StringVar(&opts.color, "color", colorAuto, "Color check diffs: auto, always or never")

	pf.StringVar(&opts.name, "name", "", "Table name for an ad-hoc run (default adhoc)")
	pf.StringSliceVar(&opts.templates, "template", nil, "Template source for an ad-hoc run (repeatable)")
	pf.StringSliceVar(&opts.defaults, "defaults", nil, "Defaults source for an ad-hoc run (repeatable)")
	pf.StringVar(&opts.document, "document", "", "Document to update; selects an ad-hoc run instead of the job file")
	pf.StringVar(&opts.marker, "marker", "", "Marker line bounding the table (default "+config.DefaultMarker+")")
	pf.IntVar(&opts.columns, "columns", 0, "Table columns, 2 or 3 (default 3 with --defaults, else 2)")

	root.AddCommand(
		&cobra.Command{
			Use:   "sync",
			Short: "Rewrite the variable tables of every configured document",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.run(stdout, false)
			},
		},
		&cobra.Command{
			Use:   "check",
			Short: "Report documents whose variable table is out of date without writing",
			Long: `check computes the same tables as sync but never writes. For each stale
document it prints a unified diff and the command exits non-zero, which
makes it suitable for CI.`,
			Args: cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.run(stdout, true)
			},
		},
	)

	return root
}

func (o *rootOptions) setupLogging(cmd *cobra.Command) error {
	env, err := config.ParseEnv()
	if err != nil {
		return err
	}

	level := env.LogLevel
	if o.logLevel != "" {
		level = o.logLevel
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, errors.KindValidation, "invalid log level %q", level)
	}

	if o.configFile == "" {
		o.configFile = env.ConfigFile
	}

	logging.SetDefault(logging.New(logging.Config{
		Level:       lvl,
		Output:      os.Stderr,
		JSON:        o.logJSON || env.LogJSON,
		Development: o.dev || env.Dev,
	}))
	return nil
}

func (o *rootOptions) tables() ([]config.Table, error) {
	if o.document != "" {
		name := o.name
		if name == "" {
			name = "adhoc"
		}
		cfg := &config.Config{Tables: []config.Table{{
			Name:      name,
			Templates: o.templates,
			Defaults:  o.defaults,
			Document:  o.document,
			Marker:    o.marker,
			Columns:   o.columns,
		}}}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg.Resolve(), nil
	}

	if o.name != "" || len(o.templates) > 0 || len(o.defaults) > 0 || o.marker != "" || o.columns != 0 {
		return nil, errors.New(errors.KindValidation, "ad-hoc table flags require --document")
	}

	path := o.configFile
	if path == "" {
		path = config.DefaultFile
	}
	logging.Debug("Using job file", "path", path)
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return cfg.Resolve(), nil
}

func (o *rootOptions) run(stdout io.Writer, check bool) error {
	printer, err := newDiffPrinter(stdout, o.color)
	if err != nil {
		return err
	}
	tables, err := o.tables()
	if err != nil {
		return err
	}

	runner := docsync.NewRunner(docsync.Options{
		Check:  check,
		Logger: logging.WithComponent("docsync"),
	})
	outcomes, err := runner.Run(tables)

	for _, out := range outcomes {
		if out.Diff != "" {
			printer.Print(out.Diff)
		}
	}
	return err
}
