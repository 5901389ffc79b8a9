package gutenberg

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/heseber/gutenberg-org-to-epub/utils"
)

// Reference-carrying elements and the attribute each one uses.
var refAttrs = []struct {
	selector string
	attr     string
}{
	{"a", "href"},
	{"img", "src"},
	{"link", "href"},
	{"script", "src"},
}

// ResolveLinks rewrites every relative reference in the document to an
// absolute URL against baseUrl. References that are already absolute stay as
// they are, so running it on a fully absolute document changes nothing.
// Elements lacking the attribute are skipped.
func (g *Gutenberg) ResolveLinks(document string, baseUrl string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %v", err)
	}

	baseUrl = utils.NormalizeBaseUrl(baseUrl)

	for _, ra := range refAttrs {
		doc.Find(ra.selector).Each(func(i int, s *goquery.Selection) {
			ref, ok := s.Attr(ra.attr)
			if !ok {
				return
			}
			s.SetAttr(ra.attr, utils.ResolveRef(baseUrl, ref))
		})
	}

	out, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("failed to serialize html: %v", err)
	}
	return out, nil
}
