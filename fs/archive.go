// Package fs provides the file-based archive of scraped storefront
// pages.
package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/brandscan"
)

// URLToPath converts a storefront page URL to a relative file path.
// Example: https://acme.com/policies/privacy-policy → policies/privacy-policy.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	path := u.Path

	// Handle root or trailing slash → index.md
	if path == "" || path == "/" {
		return "index.md", nil
	}

	path = strings.TrimPrefix(path, "/")

	// Trailing slash becomes index.md in that directory
	if strings.HasSuffix(path, "/") {
		path += "index"
	}
	path += ".md"

	// A path that escapes the archive root is hostile input.
	clean := filepath.Clean(path)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", brandscan.Errorf(brandscan.EINVALID, "path traversal in URL %q", rawURL)
	}

	return clean, nil
}

// FormatPage renders a page as Markdown with YAML frontmatter.
func FormatPage(page *brandscan.ArchivedPage) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(page.URL)
	b.WriteString("\ntitle: ")
	b.WriteString(page.Title)
	b.WriteString("\nscraped: ")
	b.WriteString(time.Now().Format("2006-01-02"))
	b.WriteString("\n---\n\n")
	b.WriteString(page.Content)
	return b.String()
}

// Ensure FileArchive implements brandscan.PageArchive at compile time.
var _ brandscan.PageArchive = (*FileArchive)(nil)

// FileArchive implements brandscan.PageArchive with atomic update
// semantics. Pages are saved to a temporary directory and moved into
// place on Commit, so an interrupted scrape never leaves a half-written
// archive where a previous complete one stood.
type FileArchive struct {
	baseDir string
	name    string
}

// NewFileArchive creates a new FileArchive.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileArchive(baseDir, name string) *FileArchive {
	return &FileArchive{
		baseDir: baseDir,
		name:    name,
	}
}

func (a *FileArchive) tempDir() string {
	return filepath.Join(a.baseDir, a.name+".tmp")
}

func (a *FileArchive) finalDir() string {
	return filepath.Join(a.baseDir, a.name)
}

// Save writes one page into the pending archive.
func (a *FileArchive) Save(ctx context.Context, page *brandscan.ArchivedPage) error {
	relPath, err := URLToPath(page.URL)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(a.tempDir(), relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	return os.WriteFile(fullPath, []byte(FormatPage(page)), 0644)
}

// Commit atomically replaces the previous archive with the pending one.
func (a *FileArchive) Commit() error {
	// Remove existing final directory if present
	if err := os.RemoveAll(a.finalDir()); err != nil {
		return err
	}

	return os.Rename(a.tempDir(), a.finalDir())
}

// Abort discards the pending archive.
func (a *FileArchive) Abort() error {
	return os.RemoveAll(a.tempDir())
}
