// Package content decides how a stored file is delivered: its content type,
// derived from the file extension, and its Content-Disposition header.
package content

import (
	"strings"
)

// DefaultType is served for unknown or missing extensions.
const DefaultType = "application/octet-stream"

var types = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"pdf":  "application/pdf",
	"txt":  "text/plain",
	"html": "text/html",
	"css":  "text/css",
	"js":   "application/javascript",
	"json": "application/json",
	"xml":  "application/xml",
	"zip":  "application/zip",
}

// TypeFor returns the content type for name based on the text after its last
// dot, ignoring case.
func TypeFor(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return DefaultType
	}
	if t, ok := types[strings.ToLower(name[i+1:])]; ok {
		return t
	}
	return DefaultType
}

// Disposition is how a client should present a response body.
type Disposition int

const (
	// Attachment asks the client to download the file.
	Attachment Disposition = iota
	// Inline asks the client to render the file.
	Inline
)

func (d Disposition) String() string {
	if d == Inline {
		return "inline"
	}
	return "attachment"
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// DispositionFor formats a Content-Disposition header value such as
// `attachment; filename="report.pdf"`.
func DispositionFor(d Disposition, displayName string) string {
	return d.String() + `; filename="` + quoteEscaper.Replace(displayName) + `"`
}
