package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fwojciec/pagetext"
	"github.com/fwojciec/pagetext/scrape"
	"golang.org/x/sync/errgroup"
)

// Dependencies holds the services used by FetchCmd.
type Dependencies struct {
	Stdout  io.Writer
	Scraper *scrape.Scraper

	// Store, if set, receives successful pages instead of Stdout.
	Store pagetext.PageStore
}

// FetchCmd fetches each URL and prints its content and links in argument order.
type FetchCmd struct {
	URLs        []string
	MaxLength   int
	Content     bool
	Links       bool
	Concurrency int
}

// Run fetches all pages with bounded concurrency. Every page is printed,
// failed ones with their placeholder; the returned error counts failures.
func (c *FetchCmd) Run(ctx context.Context, deps *Dependencies) error {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	pages := make([]*scrape.Page, len(c.URLs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, url := range c.URLs {
		g.Go(func() error {
			pages[i] = deps.Scraper.Open(gctx, url)
			return nil
		})
	}
	_ = g.Wait()

	if deps.Store != nil {
		return c.save(ctx, deps, pages)
	}

	var failed int
	for i, page := range pages {
		if i > 0 {
			fmt.Fprintln(deps.Stdout)
		}
		if len(pages) > 1 {
			fmt.Fprintf(deps.Stdout, "==> %s <==\n", page.URL())
		}
		if err := page.Err(); err != nil {
			failed++
		}
		c.print(deps.Stdout, page)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d pages failed", failed, len(pages))
	}
	return nil
}

func (c *FetchCmd) print(w io.Writer, page *scrape.Page) {
	if c.Content {
		fmt.Fprintln(w, page.Content(c.MaxLength))
	}
	if c.Links {
		links := page.Links()
		if c.Content && len(links) > 0 {
			fmt.Fprintln(w)
		}
		if len(links) > 0 {
			fmt.Fprintln(w, strings.Join(links, "\n"))
		}
	}
}

// save stores every successful page and commits once all are written.
func (c *FetchCmd) save(ctx context.Context, deps *Dependencies, pages []*scrape.Page) error {
	var saved, failed int
	for _, page := range pages {
		if page.Err() != nil {
			failed++
			fmt.Fprintln(deps.Stdout, page.Content(c.MaxLength))
			continue
		}
		p := &pagetext.Page{
			URL:       page.URL(),
			Content:   page.Content(c.MaxLength),
			Links:     page.Links(),
			FetchedAt: time.Now(),
		}
		if err := deps.Store.Save(ctx, p); err != nil {
			_ = deps.Store.Abort()
			return fmt.Errorf("failed to save %s: %w", page.URL(), err)
		}
		saved++
	}

	if err := deps.Store.Commit(); err != nil {
		_ = deps.Store.Abort()
		return fmt.Errorf("failed to commit pages: %w", err)
	}
	fmt.Fprintf(deps.Stdout, "saved %d of %d pages\n", saved, len(pages))

	if failed > 0 {
		return fmt.Errorf("%d of %d pages failed", failed, len(pages))
	}
	return nil
}
