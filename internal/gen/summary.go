package gen

import "builder-generator/internal/analyze"

// DeclSummary is a compact, AST-free view of a declaration for debug dumps.
type DeclSummary struct {
	Name       string
	Pos        string
	TypeParams string
	Fields     []FieldSummary
}

// FieldSummary describes one classified field.
type FieldSummary struct {
	Name          string
	Declared      string
	Kind          string
	EffectiveType string
}

// Describe summarizes decls in order.
func Describe(decls []*analyze.StructDecl) []DeclSummary {
	out := make([]DeclSummary, 0, len(decls))

	for _, d := range decls {
		s := DeclSummary{Name: d.Name, Pos: d.Pos, TypeParams: d.TypeParamList()}

		for i := range d.Fields {
			f := &d.Fields[i]
			s.Fields = append(s.Fields, FieldSummary{
				Name:          f.Name,
				Declared:      f.TypeString,
				Kind:          f.Class.Kind.String(),
				EffectiveType: f.EffectiveType(),
			})
		}

		out = append(out, s)
	}

	return out
}
