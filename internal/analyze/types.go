package analyze

import (
	"errors"
	"go/ast"
	"go/types"
)

// Import paths of the runtime packages generated code depends on.
const (
	OptionPkgPath  = "builder-generator/option"
	BuilderPkgPath = "builder-generator/builder"
)

// DefaultOptionalName is the type name the Field Classifier matches.
const DefaultOptionalName = "Option"

// Directive marks a struct declaration for generation when placed in its doc
// comment. It may be followed by key=value options.
const Directive = "//builder:generate"

var (
	// ErrUnsupportedShape is returned when a selected declaration is not a
	// struct type with named fields.
	ErrUnsupportedShape = errors.New("builder-generator only supports struct types with named fields")
	// ErrTypeNotFound is returned when a requested type is not declared in the package.
	ErrTypeNotFound = errors.New("type not found")
)

//go:generate go tool stringer -type=FieldKind -trimprefix=Field -output=fieldkind_string.go

// FieldKind tells whether a field must be set before Build succeeds.
type FieldKind int

const (
	FieldRequired FieldKind = iota // absence fails Build
	FieldOptional                  // declared as Option[T]; absence is a valid value
)

// Classification is the derived required/optional tag of a field.
type Classification struct {
	Kind FieldKind
	// Inner is the unwrapped T of Option[T]; nil for required fields.
	Inner ast.Expr
}

// StructDecl is a struct declaration selected for builder generation.
type StructDecl struct {
	Name       string            // e.g. "Person"
	Exported   bool              // Whether Name is exported
	TypeParams []TypeParam       // Type parameters in declaration order
	Fields     []FieldInfo       // Named fields in declaration order
	PkgName    string            // Package name, e.g. "people"
	PkgPath    string            // Package import path
	Dir        string            // Directory of the declaring file
	Filename   string            // Declaring file, base name
	Pos        string            // "person.go:12:6"
	Imports    []ImportSpec      // Imports of the declaring file
	Directives map[string]string // key=value options from the //builder:generate line
}

// TypeArgs returns the type parameter names joined for use in an
// instantiation, e.g. "[K, V]", or "" for non-generic declarations.
func (d *StructDecl) TypeArgs() string {
	if len(d.TypeParams) == 0 {
		return ""
	}

	s := "["
	for i, tp := range d.TypeParams {
		if i > 0 {
			s += ", "
		}

		s += tp.Name
	}

	return s + "]"
}

// TypeParamList returns the type parameter list for use in a declaration,
// e.g. "[K comparable, V any]", or "" for non-generic declarations.
func (d *StructDecl) TypeParamList() string {
	if len(d.TypeParams) == 0 {
		return ""
	}

	s := "["
	for i, tp := range d.TypeParams {
		if i > 0 {
			s += ", "
		}

		s += tp.Name + " " + tp.Constraint
	}

	return s + "]"
}

// TypeParam is one type parameter of a generic struct.
type TypeParam struct {
	Name       string
	Constraint string
}

// FieldInfo describes a named struct field.
type FieldInfo struct {
	Name       string   // Go field name as declared
	Type       ast.Expr // Declared type expression
	TypeString string   // Declared type as source text
	Index      int      // Position among the named fields
	Pos        string   // "person.go:14:2"
	Class      Classification
}

// IsOptional reports whether the field was classified as Option[T].
func (f *FieldInfo) IsOptional() bool {
	return f.Class.Kind == FieldOptional
}

// EffectiveType is the type a setter accepts: T for Option[T] fields,
// otherwise the declared type.
func (f *FieldInfo) EffectiveType() string {
	if f.IsOptional() {
		return types.ExprString(f.Class.Inner)
	}

	return f.TypeString
}

// ImportSpec is one import of the declaring file.
type ImportSpec struct {
	Name string // Explicit alias, "" when none
	Path string
}
