// Package public embeds the page stylesheet served under /public/static/.
package public

import (
	"embed"
	"io/fs"
)

//go:embed static/*
var static embed.FS

// StaticFS returns the static directory rooted at its contents.
func StaticFS() (fs.FS, error) {
	return fs.Sub(static, "static")
}
