package main

import (
	"fmt"
	"strings"
	"text/template"
)

// funcMap provides helper functions available to all templates.
var funcMap = template.FuncMap{
	"firstLower": firstLower,
	"quote":      func(s string) string { return fmt.Sprintf("%q", s) },
}

// templates holds all parsed code generation templates.
var templates = template.Must(template.New("").Funcs(funcMap).Parse(pinsTmpl))

// renderTemplate executes a named template into the builder.
func renderTemplate(b *strings.Builder, name string, data any) {
	if err := templates.ExecuteTemplate(b, name, data); err != nil {
		panic(fmt.Sprintf("template %s: %v", name, err))
	}
}

// --- Template data types ---

// pinsFileData holds pre-computed data for the pins template.
type pinsFileData struct {
	Package  string
	Type     string
	Revision string
	Pins     []pinConstData
	// Cases carries one pin per distinct number; duplicate values in a
	// switch would not compile.
	Cases []pinConstData
}

// pinConstData is one generated pin constant.
type pinConstData struct {
	ConstName   string
	Name        string
	Number      uint32
	Description string
}

// --- Template definitions ---

const pinsTmpl = `{{define "pins"}}
// Code generated by hwdb-gen. DO NOT EDIT.

// Package {{.Package}} holds the pin assignments for {{.Type}} rev {{.Revision}}.
package {{.Package}}

// Pin identifies one GPIO line assigned on this board.
type Pin uint32

{{- if .Pins}}

const (
{{- range .Pins}}
{{- if .Description}}
// {{.ConstName}}: {{firstLower .Description}}.
{{- end}}
{{.ConstName}} Pin = {{.Number}}
{{- end}}
)

// String returns the database name of the pin.
func (p Pin) String() string {
switch p {
{{- range .Cases}}
case {{.ConstName}}:
return {{quote .Name}}
{{- end}}
default:
return "UNKNOWN"
}
}
{{- else}}
// String returns the database name of the pin.
func (p Pin) String() string {
return "UNKNOWN"
}
{{- end}}

{{end}}`
