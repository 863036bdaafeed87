// Package frontend embeds the static web build of the dashboard.
package frontend

import (
	"embed"
	"io/fs"
)

//go:embed all:dist
var dist embed.FS

// DistFS returns the embedded build. Paths are prefixed with "dist/".
func DistFS() fs.FS {
	return dist
}
