package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/cdpsupport"
	"github.com/fwojciec/cdpsupport/agent"
	"github.com/fwojciec/cdpsupport/crawl"
	"github.com/fwojciec/cdpsupport/fs"
	"github.com/fwojciec/cdpsupport/gemini"
	"github.com/fwojciec/cdpsupport/goquery"
	"github.com/fwojciec/cdpsupport/groq"
	cdphttp "github.com/fwojciec/cdpsupport/http"
	"github.com/fwojciec/cdpsupport/library"
	cdpprom "github.com/fwojciec/cdpsupport/prometheus"
	"github.com/fwojciec/cdpsupport/readability"
	cdpslog "github.com/fwojciec/cdpsupport/slog"
	"github.com/fwojciec/cdpsupport/sqlite"
	"github.com/fwojciec/cdpsupport/trafilatura"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// sqliteFile is the database name used by the sqlite cache backend,
// relative to the cache directory.
const sqliteFile = "cdpsupport.db"

// Main represents the program.
type Main struct {
	// Getenv looks up API keys. Defaults to os.Getenv.
	Getenv func(string) string

	// SQLite database used by the sqlite cache backend.
	DB *sqlite.DB

	// Services for end-to-end testing. When set they replace the
	// network-backed implementations.
	Fetcher   cdpsupport.Fetcher
	Completer cdpsupport.Completer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Getenv: os.Getenv,
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
		kong.Name("cdpsupport"),
		kong.Description("Support chat for Customer Data Platform documentation."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'cdpsupport --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	logger, err := newLogger(cli.LogLevel, stderr)
	if err != nil {
		return err
	}
	deps.Logger = logger

	catalog, rules, err := loadCatalog(cli.Platforms)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Check the platform catalog passed with --platforms\n")
		return err
	}
	deps.Catalog = catalog

	store, err := m.openStore(cli.Store, cli.CacheDir)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Set CDP_CACHE_DIR to use a different cache directory\n")
		return err
	}
	defer m.Close()
	deps.Store = store

	registry := prometheus.NewRegistry()
	metrics, err := cdpprom.NewMetrics(registry)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}
	deps.Metrics = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	fetcher := m.Fetcher
	if fetcher == nil {
		fetcher = cdphttp.NewFetcher(cdphttp.WithTimeout(cli.FetchTimeout))
	}
	defer fetcher.Close()

	crawler := &crawl.Crawler{
		Fetcher:     cdpslog.NewLoggingFetcher(fetcher, logger),
		Extractor:   newExtractor(cli.Extractor),
		Links:       goquery.NewLinkExtractor(),
		RateLimiter: crawl.NewDomainLimiter(cli.Rate),
		MaxPages:    cli.MaxPages,
		Logger:      logger,
		Progress:    metrics.ObserveCrawl,
	}
	deps.Library = library.New(cdpslog.NewLoggingStore(store, logger), crawler, catalog, logger)

	if cmd == "serve" || cmd == "ask" {
		completer, err := m.newCompleter(ctx, cli.Provider, stderr)
		if err != nil {
			return err
		}
		completer = cdpprom.NewCompleter(cdpslog.NewLoggingCompleter(completer, logger), metrics)

		var answerer cdpsupport.Answerer = agent.New(deps.Library, completer, catalog, rules, logger)
		answerer = cdpslog.NewLoggingAnswerer(cdpprom.NewAnswerer(answerer, metrics), logger)
		deps.Answerer = answerer
	}

	return kongCtx.Run(deps)
}

// openStore opens the selected cache backend under dir.
func (m *Main) openStore(backend, dir string) (cdpsupport.DocumentStore, error) {
	if backend != "sqlite" {
		store, err := fs.NewStore(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to open cache directory %q: %w", dir, err)
		}
		return store, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %q: %w", dir, err)
	}
	path := filepath.Join(dir, sqliteFile)
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		return nil, fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return sqlite.NewStore(m.DB), nil
}

// newCompleter connects to the selected language model provider.
func (m *Main) newCompleter(ctx context.Context, provider string, stderr io.Writer) (cdpsupport.Completer, error) {
	if m.Completer != nil {
		return m.Completer, nil
	}

	switch provider {
	case "gemini":
		apiKey := m.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return nil, fmt.Errorf("GEMINI_API_KEY not set")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		return gemini.NewCompleter(client, gemini.DefaultSmallModel, gemini.DefaultLargeModel), nil
	default:
		apiKey := m.Getenv("GROQ_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GROQ_API_KEY environment variable not set. Get an API key at https://console.groq.com/keys")
			return nil, fmt.Errorf("GROQ_API_KEY not set")
		}
		completer, err := groq.NewCompleter(apiKey)
		if err != nil {
			return nil, err
		}
		return completer, nil
	}
}

// newExtractor returns the content extractor selected by name.
func newExtractor(name string) cdpsupport.Extractor {
	switch name {
	case "readability":
		return readability.NewExtractor()
	case "trafilatura":
		return trafilatura.NewExtractor()
	default:
		return goquery.NewExtractor()
	}
}

// newLogger returns a text logger on w at the named level.
func newLogger(level string, w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
