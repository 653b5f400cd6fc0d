// Package web holds the embedded HTML shells for the home and confirmation
// pages. Both render server-side data only; the interactive parts talk to
// the JSON API.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var Templates = template.Must(template.ParseFS(templateFS, "templates/*.html.tmpl"))
