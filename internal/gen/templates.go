package gen

import "text/template"

// headerTemplate opens every generated file. The first line must stay in sync
// with the marker the analyzer uses to skip generated files.
var headerTemplate = template.Must(template.New("header").Parse(`// Code generated by builder-generator. DO NOT EDIT.
// Source: {{.Source}}

package {{.PackageName}}

{{if .Imports}}
import (
{{range .Imports}}	{{if .Name}}{{.Name}} {{end}}"{{.Path}}"
{{end}})
{{end}}
`))

var factoryTemplate = template.Must(template.New("factory").Parse(`
// {{.BuilderName}} builds {{.TypeName}} values field by field.
// Setters overwrite earlier values. It is not safe for concurrent use.
type {{.BuilderName}}{{.TypeParamList}} struct {
{{- range .Fields}}
	{{.Slot}} {{$.OptionPkg}}.Option[{{.Type}}]
{{- end}}
}

// {{.Constructor}} returns a new {{.BuilderName}} with every field unset.
func {{.Constructor}}{{.TypeParamList}}() *{{.BuilderRef}} {
	return &{{.BuilderRef}}{
{{- range .Fields}}
		{{.Slot}}: {{$.OptionPkg}}.None[{{.Type}}](),
{{- end}}
	}
}

// {{.FactoryMethod}} returns a new {{.BuilderName}}.
func ({{.TypeRef}}) {{.FactoryMethod}}() *{{.BuilderRef}} {
	return {{.Constructor}}{{.TypeArgs}}()
}
`))

var settersTemplate = template.Must(template.New("setters").Parse(`
{{- range .Fields}}
// {{.Setter}} sets {{.Name}}.
func ({{$.Recv}} *{{$.BuilderRef}}) {{.Setter}}({{$.Param}} {{.Type}}) *{{$.BuilderRef}} {
	{{$.Recv}}.{{.Slot}} = {{$.OptionPkg}}.Some({{$.Param}})
	return {{$.Recv}}
}
{{end}}`))

var buildTemplate = template.Must(template.New("build").Parse(`
// {{.BuildMethod}} returns the {{.TypeName}} described by the fields set so far.
// It fails with a *{{.BuilderPkg}}.UnsetFieldError naming the first required
// field, in declaration order, that was never set. Optional fields that were
// never set are built as None. The builder is not modified, so {{.BuildMethod}}
// may be called again after setting more fields.
func ({{.Recv}} *{{.BuilderRef}}) {{.BuildMethod}}() ({{.TypeRef}}, error) {
{{- range .Fields}}{{if not .Optional}}
	{{.Local}}, ok := {{$.Recv}}.{{.Slot}}.Get()
	if !ok {
		return {{$.TypeRef}}{}, &{{$.BuilderPkg}}.UnsetFieldError{Type: {{printf "%q" $.TypeName}}, Field: {{printf "%q" .Name}}}
	}
{{end}}{{end}}
	return {{.TypeRef}}{
{{- range .Fields}}
		{{.Name}}: {{if .Optional}}{{$.Recv}}.{{.Slot}}{{else}}{{.Local}}{{end}},
{{- end}}
	}, nil
}
`))

// stageTemplates maps emitting stages to their fragments. StageOptionAware
// only changes classification and has no fragment.
var stageTemplates = map[Stage]*template.Template{
	StageFactory: factoryTemplate,
	StageSetters: settersTemplate,
	StageBuild:   buildTemplate,
}
