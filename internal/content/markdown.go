// Package content renders author-supplied markdown and validates the JSON
// site content blocks edited in the back office.
package content

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	md     = goldmark.New(goldmark.WithExtensions(extension.GFM, extension.Typographer))
	policy = newPolicy()
)

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("figure", "figcaption")
	p.AllowAttrs("loading").OnElements("img")
	p.RequireNoFollowOnLinks(true)
	return p
}

// RenderMarkdown converts src to sanitized HTML. Rendering errors yield
// the escaped source so a post is never served blank.
func RenderMarkdown(src string) string {
	if src == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return policy.Sanitize("<p>" + bluemonday.StrictPolicy().Sanitize(src) + "</p>")
	}
	return policy.Sanitize(buf.String())
}
