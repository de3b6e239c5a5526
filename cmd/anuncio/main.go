package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"google.golang.org/genai"

	"github.com/rfontes/anuncio"
	"github.com/rfontes/anuncio/acquire"
	"github.com/rfontes/anuncio/collect"
	"github.com/rfontes/anuncio/gemini"
	"github.com/rfontes/anuncio/goquery"
	anunciohttp "github.com/rfontes/anuncio/http"
	"github.com/rfontes/anuncio/htmltomarkdown"
	"github.com/rfontes/anuncio/process"
	"github.com/rfontes/anuncio/rod"
	anuncioslog "github.com/rfontes/anuncio/slog"
	"github.com/rfontes/anuncio/sqlite"
	"github.com/rfontes/anuncio/trafilatura"
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

	// Services for end-to-end testing.
	ListingService anuncio.ListingService
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
		kong.Name("anuncio"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'anuncio --help' to see available commands")
	}

	if first := args[0]; first == "help" || first == "--help" || first == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	var logger *slog.Logger
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	// Open database
	if cli.DB != "" {
		m.DBPath = cli.DB
	}
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set ANUNCIO_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.ListingService = sqlite.NewListingService(m.DB)
	deps.DB = m.DB
	deps.Listings = m.ListingService

	// Wire the processing pipeline for commands that fetch pages.
	if cmd == "fetch" || cmd == "batch" {
		static := cli.Fetch.Static || cli.Batch.Static
		reveal := cli.Fetch.RevealPhone || cli.Batch.RevealPhone

		acquirer, err := newAcquirer(static, reveal, logger, stderr)
		if err != nil {
			return err
		}
		defer acquirer.Close()

		var extractor anuncio.Extractor = goquery.NewExtractor()
		if logger != nil {
			extractor = anuncioslog.NewLoggingExtractor(extractor, logger)
		}

		deps.Processor = &process.Processor{
			Acquirer:  acquirer,
			Extractor: extractor,
			Listings:  m.ListingService,
			Content:   trafilatura.NewExtractor(),
			Converter: htmltomarkdown.NewConverter(),
		}

		if cli.Fetch.Guess || cli.Batch.Guess {
			guesser, err := newGuesser(ctx, stderr)
			if err != nil {
				return err
			}
			deps.Processor.Guesser = guesser
		}
	}

	// Wire the URL source for commands that walk search pages.
	switch {
	case cmd == "collect" && cli.Collect.Sitemap:
		deps.Source = anunciohttp.NewSitemapSource(nil)
	case cmd == "collect":
		deps.Source = newCollector(cli.Collect.MaxPages, cli.Collect.Rate, logger)
	case cmd == "batch":
		source := newCollector(cli.Batch.MaxPages, cli.Batch.Rate, logger)
		deps.Source = source
		deps.Processor.Source = source
	}

	return kongCtx.Run(deps)
}

// newAcquirer assembles the dynamic-then-static fallback pair. With
// static set the browser is never launched.
func newAcquirer(static, reveal bool, logger *slog.Logger, stderr io.Writer) (anuncio.Acquirer, error) {
	var dynamic anuncio.Fetcher
	if !static {
		var opts []rod.Option
		if reveal {
			opts = append(opts, rod.WithPhoneReveal())
		}
		f, err := rod.NewFetcher(opts...)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or pass --static")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		dynamic = f
	}

	fallback, err := acquire.NewFallback(dynamic, anunciohttp.NewFetcher())
	if err != nil {
		return nil, err
	}

	if logger != nil {
		return anuncioslog.NewLoggingAcquirer(fallback, logger), nil
	}
	return fallback, nil
}

// newCollector assembles the paginating search-page collector over the
// static fetcher.
func newCollector(maxPages int, rate float64, logger *slog.Logger) *collect.Collector {
	var fetcher anuncio.Fetcher = anunciohttp.NewFetcher()
	if logger != nil {
		fetcher = anuncioslog.NewLoggingFetcher(fetcher, logger)
	}
	return &collect.Collector{
		Fetcher:     fetcher,
		Parser:      goquery.NewSearchParser(),
		RateLimiter: collect.NewDomainLimiter(rate),
		MaxPages:    maxPages,
	}
}

// newGuesser connects to the Gemini API for the last-resort field
// locator.
func newGuesser(ctx context.Context, stderr io.Writer) (anuncio.Guesser, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	return gemini.NewGuesser(client), nil
}

func defaultDBPath() string {
	if path := os.Getenv("ANUNCIO_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "anuncio.db"
	}
	dir := filepath.Join(home, ".anuncio")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "anuncio.db")
}
