package service

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	plainPolicy = bluemonday.StrictPolicy()
	htmlPolicy  = bluemonday.UGCPolicy()
)

// sanitizeText strips every tag from user supplied text.
func sanitizeText(input string) string {
	return strings.TrimSpace(plainPolicy.Sanitize(input))
}

// RenderDescription converts a task description from markdown to safe HTML.
func RenderDescription(markdown string) string {
	if strings.TrimSpace(markdown) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(markdown), &buf); err != nil {
		return htmlPolicy.Sanitize(markdown)
	}
	return htmlPolicy.Sanitize(buf.String())
}
