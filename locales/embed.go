package locales

import "embed"

// FS holds the bundled <lang>.json dictionaries.
//
//go:embed *.json
var FS embed.FS
