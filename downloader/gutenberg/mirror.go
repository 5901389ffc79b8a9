package gutenberg

import (
	"crypto/sha256"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/heseber/gutenberg-org-to-epub/model"
)

const resourceDirSuffix = "_files"

// resourceJob is one remote URL to mirror, with every element referencing it.
type resourceJob struct {
	url       string
	localName string
	targets   []resourceTarget
}

type resourceTarget struct {
	selection *goquery.Selection
	attr      string
}

// MirrorResources downloads every image, stylesheet, and script the document
// references into a sibling resource directory and rewrites the references to
// the local relative paths. References to the same URL share one download and
// one manifest entry. A failed download is logged and its references keep the
// absolute remote URL; it never aborts the remaining resources.
func (g *Gutenberg) MirrorResources(document string, saveDir string, filename string) (string, model.ResourceManifest, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		return "", nil, fmt.Errorf("failed to parse html: %v", err)
	}

	resourcesDirName := strings.TrimSuffix(filename, ".html") + resourceDirSuffix
	resourcesDir := filepath.Join(saveDir, resourcesDirName)
	err = os.MkdirAll(resourcesDir, 0755)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create resource directory: %v", err)
	}

	jobs := collectResourceJobs(doc)

	manifest := make(model.ResourceManifest)
	mu := sync.Mutex{}
	grp := errgroup.Group{}
	grp.SetLimit(g.concurrency)
	for _, job := range jobs {
		grp.Go(func() error {
			body, err := g.client.Get(job.url)
			if err != nil {
				g.logger.Warnf("Failed to download %v: %v", job.url, err)
				return nil
			}
			err = os.WriteFile(filepath.Join(resourcesDir, job.localName), body, 0644)
			if err != nil {
				g.logger.Warnf("Failed to save %v: %v", job.url, err)
				return nil
			}
			mu.Lock()
			manifest[job.url] = path.Join(resourcesDirName, job.localName)
			mu.Unlock()
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return "", nil, err
	}

	// Rewrite references only for resources that actually made it to disk.
	for _, job := range jobs {
		localPath, ok := manifest[job.url]
		if !ok {
			continue
		}
		for _, target := range job.targets {
			target.selection.SetAttr(target.attr, localPath)
		}
	}

	out, err := doc.Html()
	if err != nil {
		return "", nil, fmt.Errorf("failed to serialize html: %v", err)
	}
	return out, manifest, nil
}

// collectResourceJobs gathers the mirrorable references (images, then
// stylesheets, then scripts), deduplicated by URL, and assigns each one a
// distinct local filename before any download starts so naming stays
// deterministic under concurrency.
func collectResourceJobs(doc *goquery.Document) []*resourceJob {
	jobs := make([]*resourceJob, 0)
	byUrl := make(map[string]*resourceJob)
	taken := make(map[string]bool)

	add := func(s *goquery.Selection, attr string) {
		resourceUrl := s.AttrOr(attr, "")
		if resourceUrl == "" {
			return
		}
		if job, ok := byUrl[resourceUrl]; ok {
			job.targets = append(job.targets, resourceTarget{selection: s, attr: attr})
			return
		}
		job := &resourceJob{
			url:       resourceUrl,
			localName: localResourceName(resourceUrl, taken),
			targets:   []resourceTarget{{selection: s, attr: attr}},
		}
		taken[job.localName] = true
		byUrl[resourceUrl] = job
		jobs = append(jobs, job)
	}

	doc.Find("img").Each(func(i int, s *goquery.Selection) { add(s, "src") })
	doc.Find(`link[rel="stylesheet"]`).Each(func(i int, s *goquery.Selection) { add(s, "href") })
	doc.Find("script").Each(func(i int, s *goquery.Selection) { add(s, "src") })

	return jobs
}

// localResourceName derives a local filename from the URL's path component.
// When two distinct URLs would share a filename, the later one gets a name
// derived from the hash of its URL instead of overwriting the first.
func localResourceName(resourceUrl string, taken map[string]bool) string {
	name := ""
	if parsed, err := url.Parse(resourceUrl); err == nil {
		name = path.Base(parsed.Path)
	}
	if name == "" || name == "." || name == "/" || taken[name] {
		hash := sha256.Sum256([]byte(resourceUrl))
		name = fmt.Sprintf("%x%s", hash[:8], path.Ext(name))
	}
	return name
}
