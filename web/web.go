// Package web holds the browser assets compiled into the server binary.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/index.html
var IndexHTML []byte

//go:embed static
var staticFiles embed.FS

// Static returns the asset tree rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
