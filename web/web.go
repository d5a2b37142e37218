// Package web holds the HTML templates of the stats front end.
package web

import (
	"embed"
	"html/template"

	"github.com/alimgiray/gstats/internal/models"
)

//go:embed templates
var files embed.FS

// Templates parses every page and layout template
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"field": models.Field,
	}).ParseFS(files, "templates/layouts/*.html", "templates/*.html")
}
