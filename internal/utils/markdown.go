package utils

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	mdParser = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
	policy = bluemonday.UGCPolicy()
)

func init() {
	// Dump bodies carry inline images and reference-style links
	policy.AllowImages()
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	policy.RequireNoReferrerOnLinks(true)
}

// SanitizeHTML runs a fragment of dump HTML through the shared UGC policy
// before it is embedded into a page.
func SanitizeHTML(source string) string {
	return policy.Sanitize(source)
}

// RenderMarkdown converts archive markdown to sanitized HTML for the
// preview server.
func RenderMarkdown(source string) template.HTML {
	var buf bytes.Buffer
	if err := mdParser.Convert([]byte(source), &buf); err != nil {
		return template.HTML(source) // Fallback
	}

	sanitized := policy.SanitizeBytes(buf.Bytes())

	return EnhanceHTMLContent(string(sanitized))
}
