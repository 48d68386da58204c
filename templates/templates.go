// Package templates embeds the preview template, its stylesheet and the CV
// document schema.
package templates

import "embed"

//go:embed cv.html style.css cv.schema.json
var FS embed.FS

const (
	PreviewFile = "cv.html"
	StyleFile   = "style.css"
	SchemaFile  = "cv.schema.json"
)
