// Package web embeds the page templates and static assets.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html
var templates embed.FS

//go:embed static
var static embed.FS

// Templates is the view directory for the html engine, rooted at templates/.
func Templates() http.FileSystem { return sub(templates, "templates") }

// Static is the asset directory served under /static.
func Static() http.FileSystem { return sub(static, "static") }

func sub(f embed.FS, dir string) http.FileSystem {
	s, err := fs.Sub(f, dir)
	if err != nil {
		panic(err)
	}
	return http.FS(s)
}
