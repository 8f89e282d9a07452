// Package templates holds the server-rendered HTML views.
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.tmpl
var files embed.FS

// Parse parses every embedded view. Templates are addressed by file name,
// e.g. "page.tmpl".
func Parse() (*template.Template, error) {
	return template.New("views").ParseFS(files, "*.tmpl")
}

// Must is Parse for program start-up.
func Must() *template.Template {
	return template.Must(Parse())
}
