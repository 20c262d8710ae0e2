// Package web embeds the browser client served by the API process.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var static embed.FS

// Client returns the client files rooted at the static directory.
func Client() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
