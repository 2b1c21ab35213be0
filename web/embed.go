// Package web embeds the interactive board UI. The solving engine
// knows nothing about it; the page talks to the JSON API only.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.tmpl static/*
var assets embed.FS

// StaticFS returns the file system for serving /static assets.
func StaticFS() http.FileSystem {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		return http.FS(embed.FS{})
	}
	return http.FS(sub)
}

// Templates parses and returns the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.ParseFS(assets, "templates/*.tmpl"))
}
