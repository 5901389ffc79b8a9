package model

// ChapterRef points at one chapter page as listed on the book's index page.
// Order is the anchor's position inside the index list.
type ChapterRef struct {
	Url   string
	Title string
	Order int
}

// ChapterFragment is the extracted, heading-normalized prose of one chapter.
type ChapterFragment struct {
	SourceUrl string
	Html      string
}

type MetaTag struct {
	Name    string
	Content string
}

// BookMetadata holds the document-level metadata collected from the book's
// landing page. MetaTags and StylesheetUrls keep document order.
type BookMetadata struct {
	MetaTags       []MetaTag
	StylesheetUrls []string
	Title          string
	Author         string
}

// MetaContent returns the content of the first meta tag with the given name,
// or "" if no such tag was collected.
func (m *BookMetadata) MetaContent(name string) string {
	for _, tag := range m.MetaTags {
		if tag.Name == name {
			return tag.Content
		}
	}
	return ""
}

// ResourceManifest maps a remote resource URL to the local relative path it
// was mirrored to. URLs that failed to download have no entry.
type ResourceManifest map[string]string

// Book carries one book through the assembly pipeline.
type Book struct {
	BaseUrl   string
	Chapters  []ChapterRef
	Fragments []ChapterFragment
	Metadata  BookMetadata
}
