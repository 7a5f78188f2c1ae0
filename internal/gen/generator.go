package gen

import (
	"bytes"
	"fmt"
	"go/ast"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"text/template"

	"builder-generator/internal/analyze"
	"builder-generator/internal/common"
	"builder-generator/internal/diagnostic"
)

// DefaultOutput is the default output file name template.
const DefaultOutput = "{{snake .Name}}_builder.go"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Naming is the file-level naming. Overrides and directives refine it per type.
	Naming Naming
	// Overrides holds per-type naming, keyed by struct name.
	Overrides map[string]Naming
	// Stages selects the emitted fragments.
	Stages []Stage
	// Output is the file name template, executed with the *analyze.StructDecl.
	Output string
	// DebugSidecar writes an .unformatted.go file next to the intended output
	// when formatting fails.
	DebugSidecar bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Naming: DefaultNaming(),
		Stages: slices.Clone(AllStages),
		Output: DefaultOutput,
	}
}

// Generator generates builder source files from struct declarations.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the directory of the package the file belongs to.
	Dir string
	// Filename is the name of the file (e.g., "person_builder.go").
	Filename string
	// TypeName is the struct the builder was generated for.
	TypeName string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate synthesizes one file per declaration.
// All declarations are planned before anything is rendered: a single error
// diagnostic aborts the run and no files are returned.
func (g *Generator) Generate(decls []*analyze.StructDecl) ([]GeneratedFile, error) {
	if err := ValidateStages(g.config.Stages); err != nil {
		return nil, err
	}

	outTmpl, err := template.New("output").Funcs(template.FuncMap{
		"snake": common.Snake,
		"lower": strings.ToLower,
	}).Parse(g.config.Output)
	if err != nil {
		return nil, fmt.Errorf("parsing output template: %w", err)
	}

	var diags diagnostic.Diagnostics

	plans := make([]*builderPlan, 0, len(decls))
	names := make(map[string]string)

	for _, decl := range decls {
		naming := g.config.Naming
		if o, ok := g.config.Overrides[decl.Name]; ok {
			naming = mergeNaming(naming, o)
		}

		p, planDiags := newPlan(decl, naming)
		diags.Merge(planDiags)

		var name bytes.Buffer
		if err := outTmpl.Execute(&name, decl); err != nil {
			return nil, fmt.Errorf("naming output for %s: %w", decl.Name, err)
		}

		key := decl.Dir + "/" + name.String()
		if other, ok := names[key]; ok {
			diags.AddError(diagnostic.CodeNameCollision,
				fmt.Sprintf("%v: %s and %s both generate %s", ErrNameCollision, other, decl.Name, name.String()),
				decl.Name, "", decl.Pos)
		}

		names[key] = decl.Name
		p.filename = name.String()
		plans = append(plans, p)
	}

	if diags.HasErrors() {
		return nil, diags.Err(ErrNameCollision)
	}

	files := make([]GeneratedFile, 0, len(plans))

	for _, p := range plans {
		file, err := g.render(p)
		if err != nil {
			return nil, fmt.Errorf("generating builder for %s: %w", p.TypeName, err)
		}

		files = append(files, *file)
	}

	return files, nil
}

// render executes the header and the enabled stage fragments for one plan.
func (g *Generator) render(p *builderPlan) (*GeneratedFile, error) {
	var buf bytes.Buffer

	header := headerData{
		Source:      p.Decl.Filename,
		PackageName: p.Decl.PkgName,
		Imports:     usedImports(p),
	}

	if err := headerTemplate.Execute(&buf, header); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	for _, st := range AllStages {
		tmpl, ok := stageTemplates[st]
		if !ok || !slices.Contains(g.config.Stages, st) {
			continue
		}

		if err := tmpl.Execute(&buf, p); err != nil {
			return nil, fmt.Errorf("executing %s template: %w", st, err)
		}
	}

	formatted, err := formatSource(filepath.Join(p.Decl.Dir, p.filename), buf.Bytes())
	if err != nil {
		// Best-effort: write unformatted code to a sidecar file to aid debugging.
		if g.config.DebugSidecar {
			_ = writeDebugUnformatted(p.Decl.Dir, p.filename, buf.Bytes())
		}

		return nil, fmt.Errorf("formatting code: %w", err)
	}

	return &GeneratedFile{
		Dir:      p.Decl.Dir,
		Filename: p.filename,
		TypeName: p.TypeName,
		Content:  formatted,
	}, nil
}

type headerData struct {
	Source      string
	PackageName string
	Imports     []analyze.ImportSpec
}

// usedImports returns the runtime packages plus the declaring file's imports
// that the field types refer to, sorted by path.
func usedImports(p *builderPlan) []analyze.ImportSpec {
	qualifiers := make(map[string]bool)

	for i := range p.Decl.Fields {
		ast.Inspect(p.Decl.Fields[i].Type, func(n ast.Node) bool {
			if sel, ok := n.(*ast.SelectorExpr); ok {
				if id, ok := sel.X.(*ast.Ident); ok {
					qualifiers[id.Name] = true
				}
			}

			return true
		})
	}

	out := []analyze.ImportSpec{
		runtimeImport(p.OptionPkg, analyze.OptionPkgPath),
		runtimeImport(p.BuilderPkg, analyze.BuilderPkgPath),
	}

	for _, imp := range p.Decl.Imports {
		if imp.Path == analyze.OptionPkgPath || imp.Path == analyze.BuilderPkgPath {
			continue
		}

		name := imp.Name
		if name == "" {
			name = common.PkgAlias(imp.Path)
		}

		// Dot imports cannot be traced through selectors; keep them and let
		// formatSource drop them if unused.
		if imp.Name == "." || qualifiers[name] {
			out = append(out, imp)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})

	return out
}

func runtimeImport(name, path string) analyze.ImportSpec {
	if name == common.PkgAlias(path) {
		return analyze.ImportSpec{Path: path}
	}

	return analyze.ImportSpec{Name: name, Path: path}
}

// mergeNaming overrides base with the non-empty values of o.
func mergeNaming(base, o Naming) Naming {
	if o.BuilderSuffix != "" {
		base.BuilderSuffix = o.BuilderSuffix
	}

	if o.FactoryMethod != "" {
		base.FactoryMethod = o.FactoryMethod
	}

	if o.BuildMethod != "" {
		base.BuildMethod = o.BuildMethod
	}

	if o.SetterPrefix != "" {
		base.SetterPrefix = o.SetterPrefix
	}

	return base
}
