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
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/contrasta"
	"github.com/fwojciec/contrasta/cache"
	"github.com/fwojciec/contrasta/goquery"
	contrastahttp "github.com/fwojciec/contrasta/http"
	"github.com/fwojciec/contrasta/pipeline"
	"github.com/fwojciec/contrasta/sklearn"
	cslog "github.com/fwojciec/contrasta/slog"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: failed to load .env: %v\n", err)
	}

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Transport overrides for end-to-end testing. Built from flags when nil.
	Fetcher    contrasta.Fetcher
	Downloader contrasta.Downloader

	// HTTP client built by Run when no overrides are set.
	httpFetcher *contrastahttp.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close releases the resources opened by Run.
func (m *Main) Close() error {
	if m.httpFetcher != nil {
		return m.httpFetcher.Close()
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
		kong.Name("contrasta"),
		kong.Description("Checks Spanish news articles for fabricated content."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{"user_agent": contrastahttp.DefaultUserAgent},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'contrasta --help' to see available commands")
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

	deps.Logger = newLogger(stderr, cli.Verbose)
	if err := m.wire(cli, deps); err != nil {
		return err
	}
	defer m.Close()

	return kongCtx.Run(deps)
}

// wire builds the analysis services from the global flags.
func (m *Main) wire(cli *CLI, deps *Dependencies) error {
	logger := deps.Logger

	registry, err := loadRegistry(cli.Publishers)
	if err != nil {
		return err
	}

	fetcher, downloader := m.Fetcher, m.Downloader
	if fetcher == nil || downloader == nil {
		opts := []contrastahttp.Option{
			contrastahttp.WithTimeout(cli.Timeout),
			contrastahttp.WithUserAgent(cli.UserAgent),
			contrastahttp.WithLimiter(contrastahttp.NewHostLimiter(cli.Rate)),
		}
		f := contrastahttp.NewFetcher(opts...)
		m.httpFetcher = f
		if fetcher == nil {
			fetcher = f
		}
		if downloader == nil {
			downloader = f
		}
	}

	loader := sklearn.NewLoader(cslog.NewLoggingDownloader(downloader, logger), cli.VectorizerURL, cli.ModelURL)
	models := cache.NewModelLoader(cslog.NewLoggingModelLoader(loader, logger), cli.ModelTTL)

	deps.Models = models
	deps.Analyzer = cslog.NewLoggingAnalyzer(&pipeline.Analyzer{
		Publishers: cslog.NewLoggingRegistry(registry, logger),
		Fetcher:    cslog.NewLoggingFetcher(fetcher, logger),
		Models:     models,
	}, logger)
	return nil
}

// loadRegistry returns the built-in publisher registry, or one loaded
// from the YAML file at path.
func loadRegistry(path string) (*goquery.Registry, error) {
	if path == "" {
		return goquery.NewDefaultRegistry()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open publishers file: %w", err)
	}
	defer f.Close()

	rules, err := goquery.LoadRules(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load publishers from %s: %w", path, err)
	}
	registry := goquery.NewRegistry()
	for _, rule := range rules {
		registry.Register(rule)
	}
	return registry, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
