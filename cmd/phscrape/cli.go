package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/kmisiak/phscrape"
	"github.com/kmisiak/phscrape/crawl"
	"github.com/kmisiak/phscrape/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	DB      *sqlite.DB
	Posts   phscrape.PostService
	Source  phscrape.URLSource
	Crawler *crawl.Crawler

	// Config is the resolved run configuration, set when run is invoked.
	Config *phscrape.Config

	// OutSink is the optional JSONL sink wired when run is invoked with --out.
	OutSink phscrape.PostSink
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable verbose logging"`

	Run     RunCmd     `cmd:"" help:"Crawl start URLs and extract post records"`
	Preview PreviewCmd `cmd:"" help:"Show post URLs advertised by a site's sitemaps"`
	List    ListCmd    `cmd:"" help:"List stored post records"`
	Export  ExportCmd  `cmd:"" help:"Export stored post records to a JSONL file"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	URLs        []string `arg:"" optional:"" help:"Start URLs (post or listing pages)"`
	Config      string   `help:"Path to a JSON config file"`
	Discover    bool     `short:"d" help:"Seed additional post URLs from the sites' sitemaps"`
	Browser     bool     `short:"b" help:"Render pages in a headless browser"`
	MaxRequests int      `short:"n" default:"0" help:"Hard cap on page fetches (0 = no cap)"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent page limit"`
	Rate        float64  `default:"1.0" help:"Requests per second per domain"`
	Out         string   `short:"o" help:"Also append records to a JSONL file"`
	PHToken     string   `env:"PHSCRAPE_PH_TOKEN" help:"Product Hunt API token (reserved)"`
}

// PreviewCmd is the "preview" subcommand.
type PreviewCmd struct {
	URL       string   `arg:"" help:"Site base URL"`
	Filter    []string `short:"F" name:"filter" help:"Filter URLs by regex (repeatable)"`
	PostsOnly bool     `help:"Show only post page URLs"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Slug   string `help:"Filter by post slug"`
	Limit  int    `default:"20" help:"Maximum records to show"`
	Offset int    `default:"0" help:"Records to skip"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Path string `arg:"" help:"Output JSONL file path"`
	Slug string `help:"Export only records for a slug"`
}
