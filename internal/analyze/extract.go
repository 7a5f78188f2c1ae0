package analyze

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"strconv"
	"strings"

	"builder-generator/internal/diagnostic"
	"builder-generator/internal/match"
)

// Extractor selects struct declarations in a package and turns them into
// StructDecls with classified fields.
type Extractor struct {
	// OptionalName is the identifier matched by the Field Classifier.
	OptionalName string
	// OptionAware enables the Field Classifier. When false every field is required.
	OptionAware bool
}

// NewExtractor returns an Extractor matching DefaultOptionalName.
func NewExtractor() *Extractor {
	return &Extractor{OptionalName: DefaultOptionalName, OptionAware: true}
}

// Extract returns the declarations named in names, or, when names is empty,
// every type declaration carrying the //builder:generate directive.
// Declarations are returned in source order. Any error diagnostic means the
// run must be aborted.
func (e *Extractor) Extract(pkg *Package, names []string) ([]*StructDecl, diagnostic.Diagnostics) {
	return e.ExtractAll([]*Package{pkg}, names)
}

// ExtractAll is Extract over several packages. A requested name is an error
// only when none of pkgs declares it, so a type can be picked out of a
// ./... pattern.
func (e *Extractor) ExtractAll(pkgs []*Package, names []string) ([]*StructDecl, diagnostic.Diagnostics) {
	var (
		diags    diagnostic.Diagnostics
		decls    []*StructDecl
		declared []string
		paths    []string
	)

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	found := make(map[string]bool)

	for _, pkg := range pkgs {
		paths = append(paths, pkg.Path)

		for _, file := range pkg.Files {
			imports := fileImports(file)

			for _, d := range file.Decls {
				gd, ok := d.(*ast.GenDecl)
				if !ok || gd.Tok != token.TYPE {
					continue
				}

				for _, s := range gd.Specs {
					spec, ok := s.(*ast.TypeSpec)
					if !ok {
						continue
					}

					declared = append(declared, spec.Name.Name)

					directives, marked := findDirective(spec.Doc, gd.Doc, len(gd.Specs) == 1)

					if len(names) > 0 {
						if !wanted[spec.Name.Name] {
							continue
						}
					} else if !marked {
						continue
					}

					found[spec.Name.Name] = true

					decl, declDiags := e.ExtractStruct(pkg, spec)
					diags.Merge(declDiags)

					if decl == nil {
						continue
					}

					decl.Imports = imports
					decl.Directives = directives
					decls = append(decls, decl)
				}
			}
		}
	}

	where := "package " + strings.Join(paths, ", ")
	if len(paths) > 1 {
		where = "packages " + strings.Join(paths, ", ")
	}

	for _, n := range names {
		if !found[n] {
			diags.AddError(diagnostic.CodeTypeNotFound,
				fmt.Sprintf("%v: no type %s in %s%s", ErrTypeNotFound, n, where, match.Hint(n, declared)),
				n, "", "")
		}
	}

	if len(names) == 0 && len(decls) == 0 && !diags.HasErrors() {
		diags.AddWarning(diagnostic.CodeNoTargets,
			fmt.Sprintf("no type in %s is marked %s", where, Directive), "", "", "")
	}

	return decls, diags
}

// ExtractStruct validates that spec declares a struct type with named fields
// and classifies its fields. It returns nil and an error diagnostic for any
// other shape.
func (e *Extractor) ExtractStruct(pkg *Package, spec *ast.TypeSpec) (*StructDecl, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	name := spec.Name.Name
	pos := e.position(pkg, spec.Pos())

	st, ok := spec.Type.(*ast.StructType)
	if !ok || spec.Assign.IsValid() {
		diags.AddError(diagnostic.CodeUnsupportedShape,
			fmt.Sprintf("%v, %s is %s", ErrUnsupportedShape, name, shapeKind(spec)), name, "", pos)

		return nil, diags
	}

	decl := &StructDecl{
		Name:     name,
		Exported: ast.IsExported(name),
		PkgName:  pkg.Name,
		PkgPath:  pkg.Path,
		Dir:      pkg.Dir,
		Pos:      pos,
	}

	if tf := pkg.Fset.File(spec.Pos()); tf != nil {
		decl.Filename = filepath.Base(tf.Name())
		if decl.Dir == "" {
			decl.Dir = filepath.Dir(tf.Name())
		}
	}

	if spec.TypeParams != nil {
		for _, f := range spec.TypeParams.List {
			constraint := types.ExprString(f.Type)
			for _, n := range f.Names {
				decl.TypeParams = append(decl.TypeParams, TypeParam{Name: n.Name, Constraint: constraint})
			}
		}
	}

	index := 0

	for _, f := range st.Fields.List {
		if len(f.Names) == 0 {
			diags.AddError(diagnostic.CodeEmbeddedField,
				fmt.Sprintf("%v, embedded field %s is not supported", ErrUnsupportedShape, types.ExprString(f.Type)),
				name, "", e.position(pkg, f.Pos()))

			continue
		}

		for _, n := range f.Names {
			if n.Name == "_" {
				diags.AddWarning(diagnostic.CodeBlankField,
					"blank field cannot be set and is skipped", name, n.Name, e.position(pkg, n.Pos()))

				continue
			}

			field := FieldInfo{
				Name:       n.Name,
				Type:       f.Type,
				TypeString: types.ExprString(f.Type),
				Index:      index,
				Pos:        e.position(pkg, n.Pos()),
				Class:      Classification{Kind: FieldRequired},
			}

			if e.OptionAware {
				field.Class = Classify(f.Type, e.OptionalName)
			}

			e.checkResolvedOption(pkg, decl, &field, &diags)

			decl.Fields = append(decl.Fields, field)
			index++
		}
	}

	if diags.HasErrors() {
		return nil, diags
	}

	return decl, diags
}

// checkResolvedOption compares the syntactic classification with the type
// checker's view and warns where they disagree. It never changes the
// classification.
func (e *Extractor) checkResolvedOption(pkg *Package, decl *StructDecl, f *FieldInfo, diags *diagnostic.Diagnostics) {
	if pkg.Info == nil || !e.OptionAware {
		return
	}

	t := pkg.Info.TypeOf(f.Type)
	if t == nil {
		return
	}

	named, ok := types.Unalias(t).(*types.Named)
	if !ok || named.Obj().Pkg() == nil {
		return
	}

	isRuntimeOption := named.Obj().Pkg().Path() == OptionPkgPath && named.Obj().Name() == "Option"

	switch {
	case !f.IsOptional() && isRuntimeOption:
		diags.AddWarning(diagnostic.CodeOptionSpelling,
			fmt.Sprintf("type %s resolves to option.Option but is not written as %s[T]; field is required",
				f.TypeString, e.OptionalName),
			decl.Name, f.Name, f.Pos)
	case f.IsOptional() && !isRuntimeOption:
		diags.AddWarning(diagnostic.CodeOptionSpelling,
			fmt.Sprintf("%s resolves to %s, not %s.Option; generated code may not compile",
				f.TypeString, named.Obj().Pkg().Path()+"."+named.Obj().Name(), OptionPkgPath),
			decl.Name, f.Name, f.Pos)
	}
}

func (e *Extractor) position(pkg *Package, p token.Pos) string {
	if pkg.Fset == nil || !p.IsValid() {
		return ""
	}

	position := pkg.Fset.Position(p)
	position.Filename = filepath.Base(position.Filename)

	return position.String()
}

// shapeKind names the kind of a non-struct type declaration for diagnostics.
func shapeKind(spec *ast.TypeSpec) string {
	if spec.Assign.IsValid() {
		return "an alias"
	}

	switch spec.Type.(type) {
	case *ast.InterfaceType:
		return "an interface type"
	case *ast.Ident, *ast.SelectorExpr, *ast.IndexExpr, *ast.IndexListExpr:
		return "a named non-struct type"
	case *ast.FuncType:
		return "a function type"
	case *ast.MapType:
		return "a map type"
	case *ast.ArrayType:
		return "an array or slice type"
	case *ast.ChanType:
		return "a channel type"
	case *ast.StarExpr:
		return "a pointer type"
	default:
		return "not a struct type"
	}
}

func fileImports(file *ast.File) []ImportSpec {
	out := make([]ImportSpec, 0, len(file.Imports))

	for _, imp := range file.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}

		spec := ImportSpec{Path: path}
		if imp.Name != nil {
			if imp.Name.Name == "_" {
				continue
			}

			spec.Name = imp.Name.Name
		}

		out = append(out, spec)
	}

	return out
}

// findDirective looks for the //builder:generate line in the spec's doc
// comment, or in the declaration's when the declaration holds a single spec.
// Directive comments are read raw: ast.CommentGroup.Text drops them.
func findDirective(specDoc, declDoc *ast.CommentGroup, single bool) (map[string]string, bool) {
	groups := []*ast.CommentGroup{specDoc}
	if single {
		groups = append(groups, declDoc)
	}

	for _, cg := range groups {
		if cg == nil {
			continue
		}

		for _, c := range cg.List {
			rest, ok := strings.CutPrefix(c.Text, Directive)
			if !ok || (rest != "" && rest[0] != ' ' && rest[0] != '\t') {
				continue
			}

			return parseDirectiveOptions(rest), true
		}
	}

	return nil, false
}

func parseDirectiveOptions(s string) map[string]string {
	opts := make(map[string]string)

	for _, tok := range strings.Fields(s) {
		k, v, _ := strings.Cut(tok, "=")
		opts[k] = v
	}

	return opts
}
