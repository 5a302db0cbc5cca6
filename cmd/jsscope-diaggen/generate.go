package main

import (
	"bytes"
	"fmt"
	"go/format"
	"strconv"
	"strings"
	"text/template"
)

var outputTemplate = template.Must(template.New("diagkind").Funcs(template.FuncMap{
	"quote":    strconv.Quote,
	"severity": func(s string) string { return severityConsts[s] },
	"args":     formatArgs,
}).Parse(`// Code generated by jsscope-diaggen from {{.Source}}. DO NOT EDIT.

package {{.Package}}

// Diagnostic kinds, in catalog order.
const (
{{- range $i, $e := .Diagnostics}}
	Diag{{$e.Name}}{{if eq $i 0}} DiagKind = iota{{end}}
{{- end}}
)

// DiagKindCount is the number of diagnostic kinds.
const DiagKindCount = {{len .Diagnostics}}

var diagKindNames = [DiagKindCount]string{
{{- range .Diagnostics}}
	{{quote .Name}},
{{- end}}
}

var diagInfos = [DiagKindCount]DiagInfo{
{{- range .Diagnostics}}
	{ // Diag{{.Name}}
		Code: {{quote .Code}},
		Phase: {{quote .Phase}},
		Severity: {{severity .Severity}},
		Message: {{quote .Message}},
		Args: {{args .Args}},
	},
{{- end}}
}
`))

func formatArgs(args []arg) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprintf("{Field: %s, Type: %s}", fieldConsts[a.Field], argTypeConsts[a.Type])
	}
	return "[]DiagArg{" + strings.Join(parts, ", ") + "}"
}

// generate renders cat as gofmt-formatted Go source for package pkg.
// source names the catalog file in the generated header.
func generate(cat *catalog, pkg, source string) ([]byte, error) {
	var buf bytes.Buffer
	err := outputTemplate.Execute(&buf, struct {
		Package     string
		Source      string
		Diagnostics []entry
	}{pkg, source, cat.Diagnostics})
	if err != nil {
		return nil, err
	}
	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated code: %w", err)
	}
	return out, nil
}
