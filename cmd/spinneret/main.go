package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/spinneret"
	"github.com/fwojciec/spinneret/crawl"
	"github.com/fwojciec/spinneret/fs"
	"github.com/fwojciec/spinneret/goquery"
	"github.com/fwojciec/spinneret/htmltomarkdown"
	spinnerethttp "github.com/fwojciec/spinneret/http"
	spinneretslog "github.com/fwojciec/spinneret/slog"
	"github.com/fwojciec/spinneret/sqlite"
	"github.com/fwojciec/spinneret/trafilatura"
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

	// Service exposed for end-to-end testing.
	DocumentService spinneret.DocumentService
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
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("spinneret"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'spinneret --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cmd == "crawl" && cli.Crawl.DB != "" {
		m.DBPath = cli.Crawl.DB
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SPINNERET_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.DocumentService = sqlite.NewDocumentService(m.DB)
	deps.DB = m.DB
	deps.Documents = m.DocumentService

	if cmd == "crawl" {
		level := slog.LevelWarn
		if cli.Crawl.Verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
		deps.Logger = logger
		deps.Verbose = cli.Crawl.Verbose

		var fetcher spinneret.Fetcher = spinnerethttp.NewFetcher(
			spinnerethttp.WithTimeout(cli.Crawl.Timeout),
		)
		fetcher = spinneretslog.NewLoggingFetcher(fetcher, logger)
		defer fetcher.Close()

		writer := spinneret.DocumentWriter(m.DocumentService)
		if cli.Crawl.Output != "" {
			jsonl, err := fs.NewJSONLWriter(cli.Crawl.Output)
			if err != nil {
				return fmt.Errorf("failed to open output file %q: %w", cli.Crawl.Output, err)
			}
			defer jsonl.Close()
			writer = teeWriter{m.DocumentService, jsonl}
		}
		deps.Writer = writer

		deps.Crawler = &crawl.Crawler{
			Fetcher:   fetcher,
			Links:     goquery.NewLinkExtractor(),
			Extractor: trafilatura.NewExtractor(),
			Converter: htmltomarkdown.NewConverter(),
			Documents: writer,
		}
	}

	return kongCtx.Run(deps)
}

// teeWriter fans CreateDocument out to every writer, stopping at the
// first failure.
type teeWriter []spinneret.DocumentWriter

func (t teeWriter) CreateDocument(ctx context.Context, doc *spinneret.Document) error {
	for _, w := range t {
		if err := w.CreateDocument(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}

func defaultDBPath() string {
	if path := os.Getenv("SPINNERET_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "spinneret.db"
	}
	dir := filepath.Join(home, ".spinneret")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "spinneret.db")
}
