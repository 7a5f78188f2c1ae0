package gen

import (
	"errors"
	"fmt"
	"go/token"

	"builder-generator/internal/analyze"
	"builder-generator/internal/common"
	"builder-generator/internal/diagnostic"
)

// ErrNameCollision is returned when two generated identifiers would clash.
var ErrNameCollision = errors.New("generated names collide")

// Directive option keys that override Naming for one declaration.
const (
	OptBuilderSuffix = "builder-suffix"
	OptFactoryMethod = "factory-method"
	OptBuildMethod   = "build-method"
	OptSetterPrefix  = "setter-prefix"
)

// Naming controls the identifiers emitted for a builder.
type Naming struct {
	// BuilderSuffix is appended to the struct name: Person -> PersonBuilder.
	BuilderSuffix string
	// FactoryMethod is the zero-argument method added to the struct type.
	FactoryMethod string
	// BuildMethod is the finalizer name.
	BuildMethod string
	// SetterPrefix is prepended to setter names: "With" -> WithName.
	SetterPrefix string
}

// DefaultNaming returns the default identifiers.
func DefaultNaming() Naming {
	return Naming{
		BuilderSuffix: "Builder",
		FactoryMethod: "Builder",
		BuildMethod:   "Build",
	}
}

// apply overrides non-empty values from directive options.
func (n Naming) apply(opts map[string]string) Naming {
	if v := opts[OptBuilderSuffix]; v != "" {
		n.BuilderSuffix = v
	}

	if v := opts[OptFactoryMethod]; v != "" {
		n.FactoryMethod = v
	}

	if v := opts[OptBuildMethod]; v != "" {
		n.BuildMethod = v
	}

	if v, ok := opts[OptSetterPrefix]; ok {
		n.SetterPrefix = v
	}

	return n
}

// builderPlan holds every identifier the templates need for one declaration.
type builderPlan struct {
	Decl          *analyze.StructDecl
	TypeName      string // "Pair"
	TypeRef       string // "Pair[K, V]"
	TypeArgs      string // "[K, V]"
	TypeParamList string // "[K comparable, V any]"
	BuilderName   string // "PairBuilder"
	BuilderRef    string // "PairBuilder[K, V]"
	Constructor   string // "NewPairBuilder"
	FactoryMethod string
	BuildMethod   string
	Recv          string // receiver name
	Param         string // setter parameter name
	OptionPkg     string // import name of the option package
	BuilderPkg    string // import name of the builder runtime package
	Fields        []fieldPlan

	filename string
}

type fieldPlan struct {
	Name     string // source field name
	Slot     string // builder slot
	Setter   string // setter method
	Local    string // local variable in the finalizer
	Type     string // effective type
	Optional bool
}

// newPlan computes names for decl and reports collisions as error diagnostics.
func newPlan(decl *analyze.StructDecl, naming Naming) (*builderPlan, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	naming = naming.apply(decl.Directives)

	p := &builderPlan{
		Decl:          decl,
		TypeName:      decl.Name,
		TypeArgs:      decl.TypeArgs(),
		TypeParamList: decl.TypeParamList(),
		FactoryMethod: naming.FactoryMethod,
		BuildMethod:   naming.BuildMethod,
	}
	p.TypeRef = p.TypeName + p.TypeArgs

	p.BuilderName = decl.Name + naming.BuilderSuffix
	p.Constructor = "New" + p.BuilderName

	if !decl.Exported {
		p.BuilderName = common.Unexport(p.BuilderName)
		p.Constructor = "new" + common.UpperCamel(p.BuilderName)
	}

	p.BuilderRef = p.BuilderName + p.TypeArgs

	typeParams := make(map[string]bool, len(decl.TypeParams))
	for _, tp := range decl.TypeParams {
		typeParams[tp.Name] = true
	}

	p.Recv = pickName([]string{"b", "bld", "bldr"}, typeParams)
	p.Param = pickName([]string{"v", "val", "value"}, typeParams)
	p.OptionPkg, p.BuilderPkg = importNames(decl.Imports)

	collide := func(field, format string, args ...any) {
		diags.AddError(diagnostic.CodeNameCollision,
			fmt.Sprintf("%v: ", ErrNameCollision)+fmt.Sprintf(format, args...), decl.Name, field, decl.Pos)
	}

	for _, name := range []string{naming.FactoryMethod, naming.BuildMethod, p.BuilderName} {
		if !token.IsIdentifier(name) {
			collide("", "%q is not a valid identifier", name)
		}
	}

	if naming.FactoryMethod == naming.BuildMethod {
		collide("", "factory method and build method are both named %s", naming.BuildMethod)
	}

	// Locals in the finalizer must not shadow anything its body refers to.
	reserved := map[string]bool{p.Recv: true, "ok": true, "nil": true, p.BuilderPkg: true, decl.Name: true}
	for tp := range typeParams {
		reserved[tp] = true
	}

	slots := make(map[string]string)
	setters := make(map[string]string)

	for i := range decl.Fields {
		f := &decl.Fields[i]

		fp := fieldPlan{
			Name:     f.Name,
			Slot:     common.LowerCamel(f.Name),
			Setter:   naming.SetterPrefix + common.UpperCamel(f.Name),
			Type:     f.EffectiveType(),
			Optional: f.IsOptional(),
		}

		if other, ok := slots[fp.Slot]; ok {
			collide(f.Name, "fields %s and %s both map to builder slot %s", other, f.Name, fp.Slot)
		}

		if other, ok := setters[fp.Setter]; ok {
			collide(f.Name, "fields %s and %s both map to setter %s", other, f.Name, fp.Setter)
		}

		if fp.Setter == naming.BuildMethod {
			collide(f.Name, "setter %s collides with the build method", fp.Setter)
		}

		if f.Name == naming.FactoryMethod {
			collide(f.Name, "field %s collides with the factory method %s", f.Name, naming.FactoryMethod)
		}

		slots[fp.Slot] = f.Name
		setters[fp.Setter] = f.Name

		p.Fields = append(p.Fields, fp)
	}

	// Slots share the builder's selector namespace with its methods.
	for _, fp := range p.Fields {
		if other, ok := setters[fp.Slot]; ok {
			collide(fp.Name, "builder slot %s collides with the setter for %s", fp.Slot, other)
		}

		if fp.Slot == naming.BuildMethod {
			collide(fp.Name, "builder slot %s collides with the build method", fp.Slot)
		}
	}

	used := make(map[string]bool, len(reserved)+len(slots))
	for k := range reserved {
		used[k] = true
	}

	for i := range p.Fields {
		fp := &p.Fields[i]
		if fp.Optional {
			continue
		}

		fp.Local = fp.Slot
		for used[fp.Local] {
			fp.Local += "_"
		}

		used[fp.Local] = true
	}

	return p, diags
}

// importNames picks the import names for the runtime packages, avoiding
// names the declaring file already uses for other packages.
func importNames(imports []analyze.ImportSpec) (optionPkg, builderPkg string) {
	taken := make(map[string]string, len(imports))

	for _, imp := range imports {
		name := imp.Name
		if name == "" {
			name = common.PkgAlias(imp.Path)
		}

		taken[name] = imp.Path
	}

	pick := func(name, path string) string {
		if p, ok := taken[name]; !ok || p == path {
			return name
		}

		return "bg" + name
	}

	return pick("option", analyze.OptionPkgPath), pick("builder", analyze.BuilderPkgPath)
}

func pickName(candidates []string, taken map[string]bool) string {
	for _, c := range candidates {
		if !taken[c] {
			return c
		}
	}

	return candidates[len(candidates)-1]
}
