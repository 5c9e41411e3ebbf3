// Package assets embeds the console stylesheet.
package assets

import (
	"embed"

	"github.com/benbjohnson/hashfs"
)

//go:embed css/*.css
var FS embed.FS

var HashFS = hashfs.NewFS(FS)

// StylesheetPath is the content-hashed URL of the console stylesheet.
func StylesheetPath() string {
	return "/static/" + HashFS.HashName("css/console.css")
}
