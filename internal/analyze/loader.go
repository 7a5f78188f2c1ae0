package analyze

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// generatedMarker identifies files written by this tool. They are skipped
// when scanning, so stale output never feeds back into generation.
const generatedMarker = "// Code generated by builder-generator. DO NOT EDIT."

// Package is a loaded Go package with its parsed, non-generated files.
type Package struct {
	Name  string
	Path  string
	Dir   string
	Fset  *token.FileSet
	Files []*ast.File
	// Info is the type information of the package. It may be incomplete when
	// the package does not type-check; it is only used for warnings.
	Info *types.Info
	// TypeErrors holds type checking errors that did not stop loading.
	TypeErrors []error
}

// Loader loads Go packages for analysis.
type Loader struct {
	// Dir is the working directory patterns are resolved against ("" means current).
	Dir string
	// Tags are extra build tags.
	Tags []string
}

// NewLoader creates a new Loader resolving patterns against dir.
func NewLoader(dir string) *Loader {
	return &Loader{Dir: dir}
}

// Load loads the packages matching patterns.
// List and parse errors fail the load; type errors are recorded on the
// Package, since the package may reference builders that are not generated yet.
func (l *Loader) Load(ctx context.Context, patterns ...string) ([]*Package, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	cfg := &packages.Config{
		Context: ctx,
		Mode:    LoadMode,
		Dir:     l.Dir,
		Tests:   false,
	}
	if len(l.Tags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(l.Tags, ",")}
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages matched %v", patterns)
	}

	var errs []error

	out := make([]*Package, 0, len(pkgs))

	for _, pkg := range pkgs {
		p := &Package{
			Name: pkg.Name,
			Path: pkg.PkgPath,
			Fset: pkg.Fset,
			Info: pkg.TypesInfo,
		}

		for _, e := range pkg.Errors {
			if e.Kind == packages.TypeError {
				p.TypeErrors = append(p.TypeErrors, e)
				continue
			}

			errs = append(errs, e)
		}

		for i, file := range pkg.Syntax {
			if isGeneratedByUs(file) {
				continue
			}

			p.Files = append(p.Files, file)

			if p.Dir == "" && i < len(pkg.CompiledGoFiles) {
				p.Dir = filepath.Dir(pkg.CompiledGoFiles[i])
			}
		}

		if p.Dir == "" && len(pkg.GoFiles) > 0 {
			p.Dir = filepath.Dir(pkg.GoFiles[0])
		}

		out = append(out, p)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	return out, nil
}

func isGeneratedByUs(file *ast.File) bool {
	for _, cg := range file.Comments {
		if cg.Pos() > file.Package {
			break
		}

		for _, c := range cg.List {
			if c.Text == generatedMarker {
				return true
			}
		}
	}

	return false
}
