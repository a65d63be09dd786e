// Package web embeds the static explorer page served at the root path.
package web

import _ "embed"

//go:embed index.html
var indexHTML []byte

// Index returns the explorer page bytes.
func Index() []byte {
	return indexHTML
}
