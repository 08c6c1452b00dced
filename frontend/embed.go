// Package frontend embeds the static assets served under /static.
package frontend

import "embed"

//go:embed dist
var StaticFiles embed.FS
