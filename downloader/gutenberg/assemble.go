package gutenberg

import (
	"fmt"
	"html"
	"strings"

	"github.com/heseber/gutenberg-org-to-epub/model"
)

// Assemble wraps the extracted chapter fragments in a minimal document
// shell: doctype, head with title, meta tags, and stylesheet links, and a
// body holding the fragments in chapter order joined by single newlines.
// Output is deterministic; identical inputs produce byte-identical documents.
func (g *Gutenberg) Assemble(metadata model.BookMetadata, fragments []model.ChapterFragment) string {
	parts := []string{"<!DOCTYPE html>", "<html>", "<head>"}

	parts = append(parts, fmt.Sprintf("<title>%s</title>", html.EscapeString(metadata.Title)))

	for _, tag := range metadata.MetaTags {
		parts = append(parts, fmt.Sprintf(`<meta name="%s" content="%s">`,
			html.EscapeString(tag.Name), html.EscapeString(tag.Content)))
	}

	for _, href := range metadata.StylesheetUrls {
		parts = append(parts, fmt.Sprintf(`<link rel="stylesheet" type="text/css" href="%s">`,
			html.EscapeString(href)))
	}

	parts = append(parts, "</head>", "<body>")

	for _, fragment := range fragments {
		parts = append(parts, fragment.Html)
	}

	parts = append(parts, "</body>", "</html>")

	return strings.Join(parts, "\n")
}
