package content

import "embed"

// FS holds the bundled markdown pages, laid out as pages/<lang>/<slug>.md.
//
//go:embed pages
var FS embed.FS
