// Package pipeline runs one generation pass: load packages, extract and
// classify struct declarations, synthesize builders, and write the files.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"

	"builder-generator/internal/analyze"
	"builder-generator/internal/common"
	"builder-generator/internal/config"
	"builder-generator/internal/diagnostic"
	"builder-generator/internal/gen"
	"builder-generator/internal/logger"
)

// Options configures a Run.
type Options struct {
	// Dir is the directory patterns are resolved against ("" means current).
	Dir string
	// Patterns are Go package patterns; default ".".
	Patterns []string
	// Types restricts generation to these struct names. Empty means every
	// struct marked with the //builder:generate directive.
	Types []string
	// Tags are extra build tags used when loading packages.
	Tags []string
	// Config is the loaded configuration file; nil means config.Default().
	Config *config.Config
	// DryRun writes the generated code to Stdout instead of to files.
	DryRun bool
	// Stdout receives dry-run output.
	Stdout io.Writer
	// DumpPlan logs a go-spew dump of the classified declarations at debug level.
	DumpPlan bool
}

// Result describes a successful Run.
type Result struct {
	Packages []string
	// Dirs are the directories of the loaded packages, for watching.
	Dirs     []string
	Files    []gen.GeneratedFile
	Written  []string
	Warnings []diagnostic.Diagnostic
}

// Run performs one generation pass. Nothing is written unless every selected
// declaration in every package was extracted and planned without errors.
func Run(ctx context.Context, opts Options) (*Result, error) {
	log := logger.FromContext(ctx)

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	genCfg, err := cfg.GeneratorConfig()
	if err != nil {
		return nil, err
	}

	genCfg.DebugSidecar = !opts.DryRun

	loader := analyze.NewLoader(opts.Dir)
	loader.Tags = opts.Tags

	pkgs, err := loader.Load(ctx, opts.Patterns...)
	if err != nil {
		return nil, err
	}

	extractor := &analyze.Extractor{
		OptionalName: cfg.OptionalType,
		OptionAware:  cfg.OptionAware(),
	}

	res := &Result{}

	for _, pkg := range pkgs {
		res.Packages = append(res.Packages, pkg.Path)
		if pkg.Dir != "" {
			res.Dirs = append(res.Dirs, pkg.Dir)
		}

		for _, e := range pkg.TypeErrors {
			log.Debug("type error ignored", "package", pkg.Path, "error", e)
		}
	}

	decls, diags := extractor.ExtractAll(pkgs, opts.Types)

	res.Dirs = common.Dedupe(res.Dirs)

	for _, w := range diags.Warnings {
		log.Warn(w.Message, "code", w.Code, "type", w.TypeName, "field", w.Field, "pos", w.Pos)
	}

	res.Warnings = diags.Warnings

	if diags.HasErrors() {
		for _, e := range diags.Errors {
			log.Error(e.Message, "code", e.Code, "type", e.TypeName, "pos", e.Pos)
		}

		return nil, diags.Err(errorCause(diags))
	}

	if opts.DumpPlan {
		log.Debug("classified declarations", "plan", spewConfig.Sdump(gen.Describe(decls)))
	}

	files, err := gen.NewGenerator(genCfg).Generate(decls)
	if err != nil {
		return nil, err
	}

	res.Files = files

	if opts.DryRun {
		out := opts.Stdout
		if out == nil {
			out = os.Stdout
		}

		for _, f := range files {
			if _, err := fmt.Fprintf(out, "// ==> %s\n%s\n", f.Filename, f.Content); err != nil {
				return nil, fmt.Errorf("writing dry-run output: %w", err)
			}
		}

		return res, nil
	}

	written, err := gen.WriteFiles(files)
	res.Written = written

	if err != nil {
		return nil, err
	}

	for _, f := range files {
		log.Info("generated builder", "type", f.TypeName, "file", f.Filename)
	}

	return res, nil
}

var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// errorCause picks the sentinel the combined error wraps.
func errorCause(d diagnostic.Diagnostics) error {
	for _, e := range d.Errors {
		switch e.Code {
		case diagnostic.CodeUnsupportedShape, diagnostic.CodeEmbeddedField:
			return analyze.ErrUnsupportedShape
		case diagnostic.CodeTypeNotFound:
			return analyze.ErrTypeNotFound
		}
	}

	return nil
}
