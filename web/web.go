// Package web holds the page templates and stylesheet of the valuation UI.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
)

//go:embed templates/*.html static/*
var files embed.FS

// TemplatePattern matches the page templates inside a web file system
const TemplatePattern = "templates/*.html"

// Embedded returns the file system compiled into the binary
func Embedded() fs.FS {
	return files
}

// Static returns the static/ subtree of fsys
func Static(fsys fs.FS) (fs.FS, error) {
	return fs.Sub(fsys, "static")
}

// Funcs are the template helpers used by the page templates
func Funcs() template.FuncMap {
	return template.FuncMap{
		"lakhs": func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"rate":  func(v float64) string { return fmt.Sprintf("%.0f", v) },
	}
}

// ParseTemplates parses the page templates from fsys
func ParseTemplates(fsys fs.FS) (*template.Template, error) {
	tmpl, err := template.New("").Funcs(Funcs()).ParseFS(fsys, TemplatePattern)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}
