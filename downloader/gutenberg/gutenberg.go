// Package gutenberg assembles a multi-page book published on
// projekt-gutenberg.org into a single self-contained HTML document: chapter
// discovery, prose extraction, metadata collection, link absolutization, and
// resource mirroring.
package gutenberg

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/heseber/gutenberg-org-to-epub/model"
	"github.com/heseber/gutenberg-org-to-epub/utils"
)

// ErrIndexNotFound is returned when the index page contains no list element
// to read the chapter list from.
var ErrIndexNotFound = errors.New("no chapter list found on index page")

type Gutenberg struct {
	client          *utils.Client
	logger          *zap.SugaredLogger
	promoteHeadings bool
	concurrency     int
}

func New() *Gutenberg {
	return &Gutenberg{
		client:          utils.NewClient(4),
		logger:          zap.NewNop().Sugar(),
		promoteHeadings: true,
		concurrency:     4,
	}
}

func (g *Gutenberg) SetLogger(logger *zap.SugaredLogger) {
	g.logger = logger
}

// SetHeadingPromotion controls whether extraction promotes heading tags by
// one level (h2 becomes h1 and so on) before reclassifying them.
func (g *Gutenberg) SetHeadingPromotion(enabled bool) {
	g.promoteHeadings = enabled
}

// SetConcurrency limits how many chapter fetches and resource downloads run
// in parallel. Values below 1 mean sequential operation.
func (g *Gutenberg) SetConcurrency(n int) {
	if n < 1 {
		n = 1
	}
	g.concurrency = n
}

// ResolveIndex fetches the book's index page and returns the chapters listed
// in its last <ul> element, in document order. A page without any <ul> yields
// ErrIndexNotFound; a list without anchors yields an empty slice.
func (g *Gutenberg) ResolveIndex(baseUrl string) ([]model.ChapterRef, error) {
	baseUrl = utils.NormalizeBaseUrl(baseUrl)
	g.logger.Infof("Resolving chapter index of %v", baseUrl)

	body, err := g.client.Get(baseUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to get index page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %v", err)
	}

	lists := doc.Find("ul")
	if lists.Length() == 0 {
		return nil, fmt.Errorf("%v: %w", baseUrl, ErrIndexNotFound)
	}

	// Earlier lists are navigation; the table of contents is the last one.
	refs := make([]model.ChapterRef, 0)
	lists.Last().Find("a").Each(func(i int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		refs = append(refs, model.ChapterRef{
			Url:   utils.ResolveRef(baseUrl, href),
			Title: strings.TrimSpace(s.Text()),
			Order: len(refs),
		})
	})

	return refs, nil
}

// GetChapter fetches one chapter page and extracts its prose.
func (g *Gutenberg) GetChapter(ref model.ChapterRef) (model.ChapterFragment, error) {
	g.logger.Infof("Downloading chapter %v: %v", ref.Order, ref.Url)

	body, err := g.client.Get(ref.Url)
	if err != nil {
		return model.ChapterFragment{}, fmt.Errorf("failed to get chapter %v: %w", ref.Url, err)
	}

	fragment, err := g.ExtractProse(ref.Url, string(body))
	if err != nil {
		return model.ChapterFragment{}, fmt.Errorf("failed to extract chapter %v: %v", ref.Url, err)
	}

	return fragment, nil
}

// GetBook resolves the index and downloads and extracts every chapter.
// Fragments are fetched in parallel but kept in chapter order. Any chapter
// failure aborts the whole book; partial books are not an output.
func (g *Gutenberg) GetBook(baseUrl string) (*model.Book, error) {
	baseUrl = utils.NormalizeBaseUrl(baseUrl)

	refs, err := g.ResolveIndex(baseUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve index: %w", err)
	}

	fragments := make([]model.ChapterFragment, len(refs))
	grp := errgroup.Group{}
	grp.SetLimit(g.concurrency)
	for _, ref := range refs {
		grp.Go(func() error {
			fragment, err := g.GetChapter(ref)
			if err != nil {
				return err
			}
			fragments[ref.Order] = fragment
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	landing, err := g.client.Get(baseUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to get landing page: %w", err)
	}
	metadata, err := g.CollectMetadata(string(landing))
	if err != nil {
		return nil, fmt.Errorf("failed to collect metadata: %v", err)
	}

	book := &model.Book{
		BaseUrl:   baseUrl,
		Chapters:  refs,
		Fragments: fragments,
		Metadata:  metadata,
	}
	resolveTitleAndAuthor(book)

	return book, nil
}

// MakeBook runs the whole pipeline and writes the final document plus its
// mirrored resources under outDir.
func (g *Gutenberg) MakeBook(baseUrl string, outDir string) error {
	book, err := g.GetBook(baseUrl)
	if err != nil {
		return err
	}

	document := g.Assemble(book.Metadata, book.Fragments)

	document, err = g.ResolveLinks(document, book.BaseUrl)
	if err != nil {
		return fmt.Errorf("failed to resolve links: %v", err)
	}

	filename := utils.CleanFileName(fmt.Sprintf("%s - %s.html", book.Metadata.Author, book.Metadata.Title))

	document, manifest, err := g.MirrorResources(document, outDir, filename)
	if err != nil {
		return fmt.Errorf("failed to mirror resources: %v", err)
	}

	outPath := filepath.Join(outDir, filename)
	err = os.WriteFile(outPath, []byte(document), 0644)
	if err != nil {
		return fmt.Errorf("failed to write book: %v", err)
	}

	g.logger.Infof("Wrote %v with %v mirrored resources", outPath, len(manifest))
	return nil
}

// resolveTitleAndAuthor fills in the book title and author. A tagged element
// inside the assembled prose wins over the landing page meta tags; if neither
// is present the literal "Unknown" is used. Runs exactly once per book, after
// all chapters are in, since the tagged elements usually appear only in the
// first chapter.
func resolveTitleAndAuthor(book *model.Book) {
	parts := make([]string, 0, len(book.Fragments))
	for _, fragment := range book.Fragments {
		parts = append(parts, fragment.Html)
	}
	prose, err := goquery.NewDocumentFromReader(strings.NewReader(strings.Join(parts, "\n")))

	book.Metadata.Title = "Unknown"
	book.Metadata.Author = "Unknown"

	if content := book.Metadata.MetaContent("title"); content != "" {
		book.Metadata.Title = content
	}
	if content := book.Metadata.MetaContent("author"); content != "" {
		book.Metadata.Author = content
	}

	if err == nil {
		if title := strings.TrimSpace(prose.Find(".title").First().Text()); title != "" {
			book.Metadata.Title = title
		}
		if author := strings.TrimSpace(prose.Find(".author").First().Text()); author != "" {
			book.Metadata.Author = author
		}
	}
}
