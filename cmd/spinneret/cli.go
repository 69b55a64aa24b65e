package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/spinneret"
	"github.com/fwojciec/spinneret/crawl"
	"github.com/fwojciec/spinneret/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	DB        *sqlite.DB
	Documents spinneret.DocumentService
	Crawler   *crawl.Crawler
	Writer    spinneret.DocumentWriter
	Verbose   bool
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Crawl  CrawlCmd  `cmd:"" help:"Crawl a site starting from a seed URL"`
	Docs   DocsCmd   `cmd:"" help:"List crawled documents"`
	Export ExportCmd `cmd:"" help:"Export crawled documents as a JSON array"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Seed     string        `arg:"" help:"Seed URL (scheme defaults to http://)"`
	MaxPages int           `short:"m" default:"0" help:"Stop after this many pages (0 means unlimited)"`
	Allow    []string      `short:"a" name:"allow" help:"Restrict the crawl to these domains (repeatable)"`
	Output   string        `short:"o" help:"Also append documents to this JSONL file"`
	DB       string        `help:"SQLite database path (overrides SPINNERET_DB)"`
	Timeout  time.Duration `default:"10s" help:"Per-request fetch timeout"`
	Verbose  bool          `short:"v" help:"Log fetches and frontier decisions to stderr"`
}

// DocsCmd is the "docs" subcommand.
type DocsCmd struct {
	Full bool   `help:"Show full document content"`
	URL  string `help:"Show only the document with this source URL"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Path string `arg:"" help:"Output file path"`
}
