package gutenberg

import (
	"testing"

	"github.com/heseber/gutenberg-org-to-epub/model"
)

func TestCollectMetadata(t *testing.T) {
	g := New()
	page := `<html><head>` +
		`<meta name="author" content="Theodor Fontane">` +
		`<meta property="og:title" content="Effi Briest">` +
		`<meta name="empty" content="">` +
		`<meta name="no-content">` +
		`<meta content="no-name">` +
		`<link rel="stylesheet" href="gutenb.css">` +
		`<link rel="stylesheet" href="print.css">` +
		`<link rel="icon" href="favicon.ico">` +
		`<link rel="stylesheet">` +
		`</head><body></body></html>`

	metadata, err := g.CollectMetadata(page)
	if err != nil {
		t.Fatalf("failed to collect metadata: %v", err)
	}

	wantTags := []model.MetaTag{
		{Name: "author", Content: "Theodor Fontane"},
		{Name: "og:title", Content: "Effi Briest"},
	}
	if len(metadata.MetaTags) != len(wantTags) {
		t.Fatalf("got %v meta tags, want %v: %v", len(metadata.MetaTags), len(wantTags), metadata.MetaTags)
	}
	for i, want := range wantTags {
		if metadata.MetaTags[i] != want {
			t.Errorf("meta tag %v = %v, want %v", i, metadata.MetaTags[i], want)
		}
	}

	wantSheets := []string{"gutenb.css", "print.css"}
	if len(metadata.StylesheetUrls) != len(wantSheets) {
		t.Fatalf("got %v stylesheets, want %v: %v", len(metadata.StylesheetUrls), len(wantSheets), metadata.StylesheetUrls)
	}
	for i, want := range wantSheets {
		if metadata.StylesheetUrls[i] != want {
			t.Errorf("stylesheet %v = %q, want %q", i, metadata.StylesheetUrls[i], want)
		}
	}
}

func TestCollectMetadata_EmptyPage(t *testing.T) {
	g := New()
	metadata, err := g.CollectMetadata("<html><head></head><body></body></html>")
	if err != nil {
		t.Fatalf("failed to collect metadata: %v", err)
	}
	if len(metadata.MetaTags) != 0 || len(metadata.StylesheetUrls) != 0 {
		t.Errorf("expected empty metadata, got %+v", metadata)
	}
}

func TestMetaContent(t *testing.T) {
	metadata := model.BookMetadata{MetaTags: []model.MetaTag{
		{Name: "author", Content: "Fontane"},
		{Name: "author", Content: "Zweitautor"},
	}}
	if got := metadata.MetaContent("author"); got != "Fontane" {
		t.Errorf("MetaContent(author) = %q, want first entry", got)
	}
	if got := metadata.MetaContent("missing"); got != "" {
		t.Errorf("MetaContent(missing) = %q, want empty", got)
	}
}
