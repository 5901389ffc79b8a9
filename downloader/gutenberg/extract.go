package gutenberg

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/heseber/gutenberg-org-to-epub/model"
)

// Boundary markers used by the projekt-gutenberg.org page family.
const (
	chapterMarkerClass = "anzeige-chap"
	bottomNavClass     = "bottomnavi-gb"
	printAdClass       = "anzeige-print"
)

// Heading classes that carry document metadata and must survive
// reclassification untouched.
var protectedHeadingClasses = []string{"title", "subtitle", "author"}

// ExtractProse isolates the narrative fragment of one chapter page: site
// chrome before the chapter marker and after the bottom navigation is cut
// away, embedded ads are dropped, and headings are normalized. Every boundary
// operation degrades to a no-op when its marker is missing, so unusual pages
// still produce content instead of aborting the book.
func (g *Gutenberg) ExtractProse(sourceUrl string, rawHtml string) (model.ChapterFragment, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHtml))
	if err != nil {
		return model.ChapterFragment{}, fmt.Errorf("failed to parse html: %v", err)
	}

	trimLeadingBoilerplate(doc)
	trimTrailingNavigation(doc)
	doc.Find("div." + printAdClass).Remove()
	trimTrailingRule(doc)
	if g.promoteHeadings {
		promoteHeadings(doc)
	}
	reclassifyHeadings(doc)

	content, err := doc.Find("body").Html()
	if err != nil {
		return model.ChapterFragment{}, fmt.Errorf("failed to serialize fragment: %v", err)
	}

	return model.ChapterFragment{SourceUrl: sourceUrl, Html: content}, nil
}

// trimLeadingBoilerplate drops everything up to and including the first
// element carrying the chapter marker class. The page header, site
// navigation, and chapter heading banner all live before that marker.
func trimLeadingBoilerplate(doc *goquery.Document) {
	marker := doc.Find("." + chapterMarkerClass).First()
	if marker.Length() == 0 {
		return
	}
	for n := marker.Get(0); inFragment(n); n = n.Parent {
		removeSiblingsBefore(n)
	}
	marker.Remove()
}

// trimTrailingNavigation drops everything from the last bottom navigation
// element onward.
func trimTrailingNavigation(doc *goquery.Document) {
	navs := doc.Find("div." + bottomNavClass)
	if navs.Length() == 0 {
		return
	}
	last := navs.Last()
	for n := last.Get(0); inFragment(n); n = n.Parent {
		removeSiblingsAfter(n)
	}
	last.Remove()
}

// trimTrailingRule drops the last <hr> and everything after it. The site
// closes the narrative with a rule before the colophon.
func trimTrailingRule(doc *goquery.Document) {
	rules := doc.Find("hr")
	if rules.Length() == 0 {
		return
	}
	last := rules.Last()
	for n := last.Get(0); inFragment(n); n = n.Parent {
		removeSiblingsAfter(n)
	}
	last.Remove()
}

// inFragment reports whether the ancestor walk is still inside the page
// content, i.e. has not reached <body> or <html>.
func inFragment(n *html.Node) bool {
	return n != nil && n.DataAtom != atom.Body && n.DataAtom != atom.Html
}

// removeSiblingsBefore detaches every sibling node before n, text nodes
// included; goquery selections only cover element siblings.
func removeSiblingsBefore(n *html.Node) {
	for n.PrevSibling != nil {
		n.Parent.RemoveChild(n.PrevSibling)
	}
}

// removeSiblingsAfter detaches every sibling node after n, text nodes
// included.
func removeSiblingsAfter(n *html.Node) {
	for n.NextSibling != nil {
		n.Parent.RemoveChild(n.NextSibling)
	}
}

// promoteHeadings renames heading tags one level up (h2 to h1, h3 to h2,
// h4 to h3), compensating for the document-wide heading the site injects on
// every chapter page. Levels are processed in ascending order so a renamed
// heading is never renamed twice.
func promoteHeadings(doc *goquery.Document) {
	renames := []struct {
		from, to string
	}{
		{"h2", "h1"},
		{"h3", "h2"},
		{"h4", "h3"},
	}
	for _, rename := range renames {
		doc.Find(rename.from).Each(func(i int, s *goquery.Selection) {
			node := s.Get(0)
			node.Data = rename.to
			node.DataAtom = atom.Lookup([]byte(rename.to))
		})
	}
}

// reclassifyHeadings replaces the class list of every h1-h4 with the single
// class "chapter", so downstream reading tools can build a table of contents
// from a uniform marker. Headings tagged title, subtitle, or author are left
// untouched; they feed metadata extraction later.
func reclassifyHeadings(doc *goquery.Document) {
	doc.Find("h1, h2, h3, h4").Each(func(i int, s *goquery.Selection) {
		for _, protected := range protectedHeadingClasses {
			if s.HasClass(protected) {
				return
			}
		}
		s.SetAttr("class", "chapter")
	})
}
