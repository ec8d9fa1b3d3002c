// Package render converts a Markdown digest into its output format.
package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Output formats.
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Linkify),
)

// ValidateFormat returns an error for unknown formats.
func ValidateFormat(format string) error {
	switch format {
	case FormatMarkdown, FormatHTML:
		return nil
	default:
		return fmt.Errorf("unsupported format %q (want %q or %q)", format, FormatMarkdown, FormatHTML)
	}
}

// Render returns md in the requested format. title is used as the HTML
// document title and ignored for Markdown.
func Render(format, title, md string) (string, error) {
	if err := ValidateFormat(format); err != nil {
		return "", err
	}
	if format == FormatMarkdown {
		return md, nil
	}
	return HTML(title, md)
}

// HTML converts md to a standalone HTML document.
func HTML(title, md string) (string, error) {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(md), &body); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}

	var doc strings.Builder
	doc.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&doc, "<title>%s</title>\n", html.EscapeString(title))
	doc.WriteString("</head>\n<body>\n")
	doc.Write(body.Bytes())
	doc.WriteString("</body>\n</html>\n")
	return doc.String(), nil
}
