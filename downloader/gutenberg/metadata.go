package gutenberg

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/heseber/gutenberg-org-to-epub/model"
)

// CollectMetadata pulls document-level metadata off the book's landing page:
// every <meta> with a name (or property) and content, and every stylesheet
// link, both in document order. Empty results are valid.
func (g *Gutenberg) CollectMetadata(landingHtml string) (model.BookMetadata, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(landingHtml))
	if err != nil {
		return model.BookMetadata{}, fmt.Errorf("failed to parse html: %v", err)
	}

	metadata := model.BookMetadata{}

	doc.Find("meta").Each(func(i int, s *goquery.Selection) {
		name := s.AttrOr("name", "")
		if name == "" {
			name = s.AttrOr("property", "")
		}
		content, ok := s.Attr("content")
		if name == "" || !ok || content == "" {
			return
		}
		metadata.MetaTags = append(metadata.MetaTags, model.MetaTag{Name: name, Content: content})
	})

	doc.Find(`link[rel="stylesheet"]`).Each(func(i int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		if href == "" {
			return
		}
		metadata.StylesheetUrls = append(metadata.StylesheetUrls, href)
	})

	return metadata, nil
}
