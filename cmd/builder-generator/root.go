package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"builder-generator/internal/config"
	"builder-generator/internal/logger"
	"builder-generator/internal/pipeline"
	"builder-generator/internal/version"
	"builder-generator/internal/watch"
)

type rootFlags struct {
	types     []string
	output    string
	config    string
	stages    []string
	tags      []string
	dryRun    bool
	watch     bool
	dumpPlan  bool
	logLevel  string
	logJSON   bool
	workDir   string
	setterPfx string
}

func newRootCmd() *cobra.Command {
	var f rootFlags

	cmd := &cobra.Command{
		Use:   "builder-generator [flags] [packages]",
		Short: "Generate builders for Go struct types",
		Long: `builder-generator writes a companion builder for each selected struct:
a builder type with one optional slot per field, a chainable setter per field,
and a Build method that fails on the first required field left unset.
Fields declared as Option[T] are optional and their setters take T.

Without --type, every struct whose doc comment contains //builder:generate
is selected.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, &f, args)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVarP(&f.types, "type", "t", nil, "struct names to generate (default: types marked //builder:generate)")
	flags.StringVarP(&f.output, "output", "o", "", `output file name template (default "{{snake .Name}}_builder.go")`)
	flags.StringVarP(&f.config, "config", "c", "", "YAML config file (default: "+config.DefaultFile+" if present)")
	flags.StringSliceVar(&f.stages, "stages", nil, "stages to emit: factory,setters,build,option-aware")
	flags.StringVar(&f.setterPfx, "setter-prefix", "", "prefix for setter names, e.g. With")
	flags.StringSliceVar(&f.tags, "tags", nil, "build tags used when loading packages")
	flags.BoolVar(&f.dryRun, "dry-run", false, "print generated code to stdout instead of writing files")
	flags.BoolVar(&f.watch, "watch", false, "regenerate when sources change")
	flags.BoolVar(&f.dumpPlan, "dump-plan", false, "dump the classified declarations at debug level")
	flags.StringVar(&f.logLevel, "log-level", string(logger.InfoLevel), "log level: debug|info|warn|error")
	flags.BoolVar(&f.logJSON, "log-json", false, "JSON log output")
	flags.StringVarP(&f.workDir, "dir", "C", "", "resolve packages relative to this directory")

	cmd.AddCommand(newVersionCmd(), newInitCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Info())
			return err
		},
	}
}

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a config file with the default settings",
		Long: `Write a config file with the default settings to path, or to
` + config.DefaultFile + ` in the current directory. An existing file is kept
unless --force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultFile
			if len(args) == 1 {
				path = args[0]
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			if err := config.Default().Save(path); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)

			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}

func runRoot(cmd *cobra.Command, f *rootFlags, args []string) error {
	log := logger.NewLogger(&logger.Config{
		Level:  logger.Level(strings.ToLower(f.logLevel)),
		Output: cmd.ErrOrStderr(),
		JSON:   f.logJSON,
	})
	ctx := logger.ContextWithLogger(cmd.Context(), log)

	cfg, err := config.LoadOptional(f.config)
	if err != nil {
		return err
	}

	// Flags win over the config file.
	if f.output != "" {
		cfg.Output = f.output
	}

	if len(f.stages) > 0 {
		cfg.Stages = f.stages
	}

	if f.setterPfx != "" {
		cfg.SetterPrefix = f.setterPfx
	}

	opts := pipeline.Options{
		Dir:       f.workDir,
		Patterns:  args,
		Types:     f.types,
		Tags:      f.tags,
		Config:    cfg,
		DryRun:    f.dryRun,
		Stdout:    cmd.OutOrStdout(),
		DumpPlan:  f.dumpPlan,
	}

	res, err := pipeline.Run(ctx, opts)
	if err != nil {
		return err
	}

	if !f.watch {
		return nil
	}

	w := watch.New(res.Dirs, func(ctx context.Context) ([]string, error) {
		r, err := pipeline.Run(ctx, opts)
		if err != nil {
			return nil, err
		}

		return r.Written, nil
	})

	w.Ignore(res.Written)

	return w.Watch(ctx)
}
