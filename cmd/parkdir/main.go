package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/parkdir"
	"github.com/fwojciec/parkdir/cache"
	"github.com/fwojciec/parkdir/fs"
	"github.com/fwojciec/parkdir/goquery"
	parkhttp "github.com/fwojciec/parkdir/http"
	"github.com/fwojciec/parkdir/mapquest"
	parkslog "github.com/fwojciec/parkdir/slog"
	"github.com/fwojciec/parkdir/sqlite"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Optional dotenv file loaded before flags are parsed. Variables
	// already set in the environment take precedence.
	EnvFile string

	// Input for the browse command.
	Stdin io.Reader

	// Transport overrides the HTTP fetcher, for end-to-end testing.
	Transport parkdir.Fetcher

	// SQLite database, open only with --store=sqlite.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		EnvFile: ".env",
		Stdin:   os.Stdin,
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
	var envErr error
	if m.EnvFile != "" {
		envErr = godotenv.Load(m.EnvFile)
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("parkdir"),
		kong.Description("Browse national park sites by state and find places nearby"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) > 0 {
		if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
			_, _ = parser.Parse([]string{"--help"})
			return nil
		}
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := newLogger(stderr, cli.Verbose)
	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		logger.Warn("ignoring unreadable env file", "path", m.EnvFile, tint.Err(envErr))
	}

	store, err := m.openStore(cli, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Set PARKDIR_CACHE to use a different cache location\n")
		return err
	}
	defer m.Close()

	entries, err := store.Load(ctx)
	if err != nil {
		if parkdir.ErrorCode(err) != parkdir.ENOTFOUND {
			logger.Warn("ignoring unreadable cache", tint.Err(err))
		}
		entries = parkdir.Entries{}
	}

	transport := m.Transport
	if transport == nil {
		transport = parkhttp.NewFetcher(
			parkhttp.WithTimeout(cli.Timeout),
			parkhttp.WithLimiter(parkhttp.NewDomainLimiter(cli.Rate)),
		)
	}

	gateway := cache.NewGateway(store, entries,
		parkslog.NewLoggingFetcher(transport, logger),
		cache.WithDecoder(mapquest.Decoder(cli.Format)),
	)
	defer gateway.Close()

	nearby := mapquest.NewClient(
		parkslog.NewLoggingStructuredFetcher(gateway, logger),
		cli.APIKey,
		mapquest.WithFormat(cli.Format),
	)

	deps := &Dependencies{
		Ctx:     ctx,
		Stdin:   m.Stdin,
		Stdout:  stdout,
		Stderr:  stderr,
		Catalog: parkslog.NewLoggingCatalog(goquery.NewCatalog(gateway), logger),
		Nearby:  parkslog.NewLoggingNearbyService(nearby, logger),
	}

	err = kongCtx.Run(deps)

	stats := gateway.Stats()
	logger.Debug("cache stats", "hits", stats.Hits, "misses", stats.Misses, "entries", stats.Entries)

	return err
}

// openStore returns the cache backend selected on the command line.
func (m *Main) openStore(cli *CLI, logger *slog.Logger) (parkdir.CacheStore, error) {
	path := cli.Cache
	if path == "" {
		path = defaultCachePath(cli.Store)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	var store parkdir.CacheStore
	switch cli.Store {
	case "sqlite":
		m.DB = sqlite.NewDB(path)
		if err := m.DB.Open(); err != nil {
			m.DB = nil
			return nil, fmt.Errorf("failed to open cache database at %q: %w", path, err)
		}
		store = sqlite.NewCacheStore(m.DB)
	case "file", "":
		store = fs.NewCacheStore(path)
	default:
		return nil, errors.New("unknown cache store " + cli.Store)
	}

	return parkslog.NewLoggingCacheStore(store, logger), nil
}

// newLogger returns a tint logger on w. Only warnings are shown unless
// verbose is set.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    w != os.Stderr,
	}))
}

func defaultCachePath(store string) string {
	name := "cache.json"
	if store == "sqlite" {
		name = "cache.db"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".parkdir", name)
}
