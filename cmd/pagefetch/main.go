package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagetext"
	pagefs "github.com/fwojciec/pagetext/fs"
	"github.com/fwojciec/pagetext/goquery"
	"github.com/fwojciec/pagetext/htmltomarkdown"
	pagehttp "github.com/fwojciec/pagetext/http"
	pageprom "github.com/fwojciec/pagetext/prometheus"
	"github.com/fwojciec/pagetext/scrape"
	pageslog "github.com/fwojciec/pagetext/slog"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()
	m.EnvFile = ".env"

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// EnvFile, if set, is loaded before flags are parsed. Variables already
	// present in the environment win. A missing file is ignored.
	EnvFile string

	// Fetcher overrides the HTTP fetcher. Used by tests.
	Fetcher pagetext.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URLs        []string      `arg:"" required:"" name:"url" help:"Page URLs to fetch"`
	Links       bool          `short:"l" help:"Print outbound links after the content"`
	LinksOnly   bool          `help:"Print only outbound links"`
	MaxLength   int           `short:"n" default:"2000" help:"Maximum characters of content per page"`
	Timeout     time.Duration `short:"t" default:"10s" env:"PAGETEXT_TIMEOUT" help:"Fetch timeout per page"`
	UserAgent   string        `env:"PAGETEXT_USER_AGENT" help:"User-Agent header (default: desktop Chrome)"`
	Markdown    bool          `short:"m" help:"Render page body as Markdown"`
	Concurrency int           `short:"c" default:"4" help:"Concurrent fetch limit"`
	Output      string        `short:"o" type:"path" help:"Save pages as files under this directory instead of printing"`
	MetricsFile string        `type:"path" help:"Write fetch metrics in Prometheus text format to this file"`
	Verbose     bool          `short:"v" help:"Log every fetch"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) (err error) {
	if m.EnvFile != "" {
		if err := godotenv.Load(m.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", m.EnvFile, err)
		}
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagefetch"),
		kong.Description("Fetch web pages and print their text content and links"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err = parser.Parse(args); err != nil {
		return err
	}

	if cli.MaxLength <= 0 {
		return fmt.Errorf("max length must be positive")
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	var fetcher pagetext.Fetcher = m.Fetcher
	if fetcher == nil {
		fetcher = pagehttp.NewFetcher(
			pagehttp.WithTimeout(cli.Timeout),
			pagehttp.WithUserAgent(cli.UserAgent),
		)
	}
	fetcher = pageslog.NewLoggingFetcher(fetcher, logger)

	if cli.MetricsFile != "" {
		reg := prometheus.NewRegistry()
		fetcher, err = pageprom.NewMetricsFetcher(fetcher, reg)
		if err != nil {
			return err
		}
		defer func() {
			if werr := prometheus.WriteToTextfile(cli.MetricsFile, reg); werr != nil && err == nil {
				err = fmt.Errorf("failed to write metrics: %w", werr)
			}
		}()
	}
	defer fetcher.Close()

	var contentOpts []goquery.ContentOption
	if cli.Markdown {
		contentOpts = append(contentOpts, goquery.WithConverter(htmltomarkdown.NewConverter()))
	}

	cmd := &FetchCmd{
		URLs:        cli.URLs,
		MaxLength:   cli.MaxLength,
		Content:     !cli.LinksOnly,
		Links:       cli.Links || cli.LinksOnly,
		Concurrency: cli.Concurrency,
	}

	deps := &Dependencies{
		Stdout: stdout,
		Scraper: &scrape.Scraper{
			Fetcher: fetcher,
			Content: goquery.NewContentExtractor(contentOpts...),
			Links:   goquery.NewLinkExtractor(),
		},
	}

	if cli.Output != "" {
		var storeOpts []pagefs.Option
		if cli.Markdown {
			storeOpts = append(storeOpts, pagefs.WithExtension(".md"))
		}
		deps.Store = pagefs.NewFileStore(filepath.Dir(cli.Output), filepath.Base(cli.Output), storeOpts...)
	}

	return cmd.Run(ctx, deps)
}
