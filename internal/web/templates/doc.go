// Package templates holds the templ components of the web UI. Handlers
// render them the same way whether they produce a full page or an HTMX
// fragment.
//
// The *_templ.go files are generated from the .templ sources; edit the
// sources and regenerate.
package templates

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.960 generate
