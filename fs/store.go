// Package fs provides file-based storage for extracted pages.
package fs

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/pagetext"
	"gopkg.in/yaml.v3"
)

// Ensure FileStore implements pagetext.PageStore at compile time.
var _ pagetext.PageStore = (*FileStore)(nil)

// DefaultExtension is the file extension for saved pages.
const DefaultExtension = ".txt"

// FileStore implements pagetext.PageStore with atomic update semantics.
// Pages are saved to a temporary directory, then moved atomically on Commit.
type FileStore struct {
	baseDir string
	name    string
	ext     string
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithExtension sets the file extension, e.g. ".md" for Markdown output.
func WithExtension(ext string) Option {
	return func(s *FileStore) {
		s.ext = ext
	}
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string, opts ...Option) *FileStore {
	s := &FileStore{
		baseDir: baseDir,
		name:    name,
		ext:     DefaultExtension,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes page under host/path in the temporary directory.
func (s *FileStore) Save(ctx context.Context, page *pagetext.Page) error {
	relPath, err := URLToPath(page.URL, s.ext)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(s.tempDir(), relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	content, err := FormatPage(page)
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}

func (s *FileStore) Commit() error {
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// URLToPath converts a page URL to a relative file path.
// Example: https://site.test/docs/api → site.test/docs/api.txt
func URLToPath(rawURL, ext string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", pagetext.Errorf(pagetext.EINVALID, "invalid page URL %q: %v", rawURL, err)
	}
	if u.Host == "" {
		return "", pagetext.Errorf(pagetext.EINVALID, "page URL %q has no host", rawURL)
	}
	for _, seg := range strings.Split(u.Path, "/") {
		if seg == ".." {
			return "", pagetext.Errorf(pagetext.EINVALID, "path traversal in %q", rawURL)
		}
	}

	host := strings.ReplaceAll(u.Host, ":", "_")
	p := strings.TrimPrefix(path.Clean("/"+u.Path), "/")
	switch {
	case p == "":
		p = "index"
	case strings.HasSuffix(u.Path, "/"):
		p += "/index"
	}
	return filepath.Join(host, filepath.FromSlash(p)+ext), nil
}

type frontmatter struct {
	Source  string   `yaml:"source"`
	Fetched string   `yaml:"fetched"`
	Links   []string `yaml:"links,omitempty"`
}

// FormatPage formats a page with YAML frontmatter holding its source URL,
// fetch date and links.
func FormatPage(page *pagetext.Page) (string, error) {
	fetched := page.FetchedAt
	if fetched.IsZero() {
		fetched = time.Now()
	}
	meta, err := yaml.Marshal(frontmatter{
		Source:  page.URL,
		Fetched: fetched.Format("2006-01-02"),
		Links:   page.Links,
	})
	if err != nil {
		return "", &pagetext.Error{Code: pagetext.EINTERNAL, Message: "failed to encode frontmatter", Err: err}
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(meta)
	b.WriteString("---\n\n")
	b.WriteString(page.Content)
	b.WriteString("\n")
	return b.String(), nil
}
