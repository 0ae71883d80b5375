package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/kmisiak/phscrape"
	"github.com/kmisiak/phscrape/crawl"
	"github.com/kmisiak/phscrape/extract"
	"github.com/kmisiak/phscrape/fs"
	"github.com/kmisiak/phscrape/goquery"
	phhttp "github.com/kmisiak/phscrape/http"
	"github.com/kmisiak/phscrape/rod"
	phslog "github.com/kmisiak/phscrape/slog"
	"github.com/kmisiak/phscrape/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Service for end-to-end testing.
	PostService phscrape.PostService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("phscrape"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'phscrape --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelError
	if cli.Verbose {
		level = slog.LevelInfo
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set PHSCRAPE_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.PostService = sqlite.NewPostService(m.DB)
	deps.DB = m.DB
	deps.Posts = m.PostService
	deps.Source = phslog.NewLoggingURLSource(phhttp.NewSitemapSource(nil), deps.Logger)

	// Wire the crawler only for the run command; other commands never touch
	// the network or the browser.
	if cmd == "run" {
		cfg, err := cli.Run.config()
		if err != nil {
			return err
		}
		deps.Config = cfg

		var fetcher phscrape.PageFetcher
		if cfg.UseBrowser {
			f, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = f
		} else {
			fetcher = phhttp.NewFetcher()
		}
		fetcher = phslog.NewLoggingFetcher(fetcher, deps.Logger)
		defer fetcher.Close()

		sink := phscrape.PostSink(m.PostService)
		if cli.Run.Out != "" {
			w, err := fs.NewWriter(cli.Run.Out)
			if err != nil {
				return fmt.Errorf("failed to open output file %q: %w", cli.Run.Out, err)
			}
			defer w.Close()
			deps.OutSink = w
			sink = multiSink{m.PostService, w}
		}

		deps.Crawler = &crawl.Crawler{
			Fetcher:     fetcher,
			Extractor:   phslog.NewLoggingExtractor(extract.NewExtractor(), deps.Logger),
			Links:       goquery.NewPostLinkExtractor(),
			Sink:        sink,
			Limiter:     crawl.NewDomainLimiter(cli.Run.Rate),
			Concurrency: cli.Run.Concurrency,
		}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("PHSCRAPE_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "phscrape.db"
	}
	dir := filepath.Join(home, ".phscrape")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "phscrape.db")
}
