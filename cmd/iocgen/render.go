package main

import (
	"bytes"
	"fmt"
	"go/format"
	"strconv"
	"text/template"
)

type classData struct {
	Var         string
	Constructor string
	Deps        []string
}

type bindingData struct {
	Token  string
	Method string
	Target string
}

// templateData is the input passed to the Go template.
type templateData struct {
	Package   string
	Source    string
	IOCImport string
	Alias     string
	Named     bool
	Classes   []classData
	Bindings  []bindingData
}

// render produces the formatted generated file for spec.
func render(spec Spec, iocImport, alias, source string) ([]byte, error) {
	classVars := make(map[string]string, len(spec.Classes))
	for _, class := range spec.Classes {
		classVars[class.Constructor] = class.Name
	}

	abstract := func(name string) string {
		return alias + ".Abstract(" + strconv.Quote(name) + ")"
	}

	data := templateData{
		Package:   spec.Package,
		Source:    source,
		IOCImport: iocImport,
		Alias:     alias,
		Named:     alias != defaultAlias(iocImport),
	}

	for _, class := range spec.Classes {
		cd := classData{Var: class.Name, Constructor: class.Constructor}
		for _, dep := range class.Deps {
			switch {
			case dep.Class != "":
				cd.Deps = append(cd.Deps, classVars[dep.Class])
			case dep.Abstract != "":
				cd.Deps = append(cd.Deps, abstract(dep.Abstract))
			default:
				cd.Deps = append(cd.Deps, abstract(dep.Type))
			}
		}
		data.Classes = append(data.Classes, cd)
	}

	for _, binding := range spec.Bindings {
		target := binding.Target
		if binding.targetsClass() {
			target = classVars[binding.Target]
		}
		data.Bindings = append(data.Bindings, bindingData{
			Token:  abstract(binding.Abstract),
			Method: binderMethods[binding.To],
			Target: target,
		})
	}

	var out bytes.Buffer
	if err := genTemplate.Execute(&out, data); err != nil {
		return nil, err
	}

	formatted, err := format.Source(out.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated code: %w\n%s", err, out.Bytes())
	}
	return formatted, nil
}

// genTemplate is the Go source template for the generated file.
var genTemplate = template.Must(
	template.New("iocgen").Parse(`// Code generated by iocgen from {{.Source}}; DO NOT EDIT.

package {{.Package}}

import {{if .Named}}{{.Alias}} {{end}}"{{.IOCImport}}"
{{- if .Classes}}

var (
{{- range .Classes}}
	{{.Var}} = {{$.Alias}}.ClassOf({{.Constructor}})
{{- end}}
)

func init() {
{{- range .Classes}}
	{{$.Alias}}.Declare({{.Var}}{{range .Deps}}, {{.}}{{end}})
{{- end}}
}
{{- end}}

// RegisterBindings registers the bindings declared in {{.Source}} on c.
func RegisterBindings(c *{{.Alias}}.Container) {
{{- range .Bindings}}
	c.Bind({{.Token}}).{{.Method}}({{.Target}})
{{- end}}
}
`),
)
