package goquery_test

import (
	"testing"

	"github.com/fwojciec/pagetext"
	pagegoquery "github.com/fwojciec/pagetext/goquery"
	"github.com/stretchr/testify/assert"
)

func TestLinkExtractor_ExtractLinks(t *testing.T) {
	t.Parallel()

	t.Run("resolves links in document order and skips anchors without href", func(t *testing.T) {
		t.Parallel()

		doc := parseDocument(t, "https://site.test/page", `<html><body>
<a href="/x">x</a>
<a href="https://y.test">y</a>
<a>no href</a>
</body></html>`)

		links := pagegoquery.NewLinkExtractor().ExtractLinks(doc, "https://site.test/page")

		assert.Equal(t, []string{"https://site.test/x", "https://y.test"}, links)
	})

	t.Run("skips empty and blank href", func(t *testing.T) {
		t.Parallel()

		doc := parseDocument(t, "https://site.test/page", `<html><body><a href="">e</a><a href="   ">b</a><a href=" /ok ">ok</a></body></html>`)

		links := pagegoquery.NewLinkExtractor().ExtractLinks(doc, "https://site.test/page")

		assert.Equal(t, []string{"https://site.test/ok"}, links)
	})

	t.Run("keeps duplicates", func(t *testing.T) {
		t.Parallel()

		doc := parseDocument(t, "https://site.test/", `<html><body><a href="/a">1</a><a href="/a">2</a></body></html>`)

		links := pagegoquery.NewLinkExtractor().ExtractLinks(doc, "https://site.test/")

		assert.Equal(t, []string{"https://site.test/a", "https://site.test/a"}, links)
	})

	t.Run("keeps non-HTTP schemes", func(t *testing.T) {
		t.Parallel()

		doc := parseDocument(t, "https://site.test/", `<html><body><a href="mailto:me@site.test">m</a><a href="javascript:void(0)">j</a></body></html>`)

		links := pagegoquery.NewLinkExtractor().ExtractLinks(doc, "https://site.test/")

		assert.Equal(t, []string{"mailto:me@site.test", "javascript:void(0)"}, links)
	})

	t.Run("finds anchors anywhere in the document", func(t *testing.T) {
		t.Parallel()

		doc := parseDocument(t, "https://site.test/", `<html><body><nav><a href="/nav">n</a></nav><noscript><a href="/nojs">x</a></noscript><footer><a href="/foot">f</a></footer></body></html>`)

		links := pagegoquery.NewLinkExtractor().ExtractLinks(doc, "https://site.test/")

		assert.Contains(t, links, "https://site.test/nav")
		assert.Contains(t, links, "https://site.test/foot")
	})

	t.Run("returns empty slice for page without links", func(t *testing.T) {
		t.Parallel()

		doc := parseDocument(t, "https://site.test/", `<html><body><p>no links</p></body></html>`)

		links := pagegoquery.NewLinkExtractor().ExtractLinks(doc, "https://site.test/")

		assert.NotNil(t, links)
		assert.Empty(t, links)
	})

	t.Run("keeps hrefs that fail to parse", func(t *testing.T) {
		t.Parallel()

		doc := parseDocument(t, "https://site.test/docs/p", `<html><body>
<a href="/a%zz">root</a>
<a href="b%zz">relative</a>
<a href="http://[::1">absolute</a>
<a href="/ok">ok</a>
</body></html>`)

		links := pagegoquery.NewLinkExtractor().ExtractLinks(doc, "https://site.test/docs/p")

		assert.Equal(t, []string{
			"https://site.test/a%zz",
			"https://site.test/docs/b%zz",
			"http://[::1",
			"https://site.test/ok",
		}, links)
	})

	t.Run("returns empty slice for invalid base URL", func(t *testing.T) {
		t.Parallel()

		doc := parseDocument(t, "", `<html><body><a href="/a">a</a></body></html>`)

		links := pagegoquery.NewLinkExtractor().ExtractLinks(doc, "http://[::1")

		assert.Empty(t, links)
	})

	t.Run("returns empty slice for nil document", func(t *testing.T) {
		t.Parallel()

		links := pagegoquery.NewLinkExtractor().ExtractLinks(nil, "https://site.test/")

		assert.NotNil(t, links)
		assert.Empty(t, links)
	})
}

func TestLinkExtractor_Resolution(t *testing.T) {
	t.Parallel()

	const base = "https://site.test/docs/guide/page?lang=en"

	tests := []struct {
		name string
		href string
		want string
	}{
		{"absolute", "https://other.test/a", "https://other.test/a"},
		{"scheme-relative", "//cdn.test/lib.js", "https://cdn.test/lib.js"},
		{"root-relative", "/about", "https://site.test/about"},
		{"path-relative", "intro", "https://site.test/docs/guide/intro"},
		{"parent-relative", "../api", "https://site.test/docs/api"},
		{"query-only", "?lang=de", "https://site.test/docs/guide/page?lang=de"},
		{"fragment-only", "#install", "https://site.test/docs/guide/page?lang=en#install"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := parseDocument(t, base, `<html><body><a href="`+tt.href+`">link</a></body></html>`)

			links := pagegoquery.NewLinkExtractor().ExtractLinks(doc, base)

			assert.Equal(t, []string{tt.want}, links)
		})
	}
}

// Compile-time verification of interface implementations
var (
	_ pagetext.LinkExtractor    = (*pagegoquery.LinkExtractor)(nil)
	_ pagetext.ContentExtractor = (*pagegoquery.ContentExtractor)(nil)
)
