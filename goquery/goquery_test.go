package goquery_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/pagetext"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// parseDocument parses src as a page fetched from url.
func parseDocument(t *testing.T, url, src string) *pagetext.Document {
	t.Helper()

	root, err := html.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return &pagetext.Document{URL: url, Root: root}
}
