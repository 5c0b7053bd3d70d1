// Package web holds the embedded admin UI assets.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var static embed.FS

// StaticFS returns the admin UI assets rooted at the static directory.
func StaticFS() (fs.FS, error) {
	return fs.Sub(static, "static")
}
