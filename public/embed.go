// Package public bundles the static files served under /assets and /images.
package public

import "embed"

//go:embed assets images
var FS embed.FS
