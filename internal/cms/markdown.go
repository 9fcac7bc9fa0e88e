package cms

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	contentPolicy = newContentHTMLPolicy()
)

func newContentHTMLPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("figure", "figcaption")
	policy.AllowAttrs("class").OnElements("figure", "figcaption", "p", "span", "div", "a")
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// Render converts a page body to sanitized HTML. Bodies in "html" format skip markdown.
func Render(format, body string) (template.HTML, error) {
	var raw []byte
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "html":
		raw = []byte(body)
	default:
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(body), &buf); err != nil {
			return "", err
		}
		raw = buf.Bytes()
	}
	return template.HTML(contentPolicy.SanitizeBytes(raw)), nil
}
