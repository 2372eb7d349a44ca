// cmd/openhours/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"openhours/internal/adapters/output"
	"openhours/internal/adapters/webhook"
	"openhours/internal/catalog"
	"openhours/internal/core/domain"
	"openhours/internal/core/usecases"
	"openhours/internal/platform/cache"
	"openhours/internal/platform/config"
	"openhours/internal/platform/logx"

	// Import providers for auto-registration via init()
	_ "openhours/internal/providers/bonappetit"
	_ "openhours/internal/providers/file"
)

var (
	// Rellenables con -ldflags en build
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	// 1. Config
	cfg, err := config.Load(args)
	if errors.Is(err, pflag.ErrHelp) {
		config.PrintHelp(stdout)
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprintln(stderr, "Try: openhours -h for help")
		return exitUsage
	}
	if cfg.PrintVersion {
		config.PrintVersion(stdout, version, commit, date)
		return exitOK
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprintln(stderr, "Usage: openhours -f <facility> | --all | --serve")
		return exitUsage
	}

	// 2. Shared logger
	logger := logx.NewWithLevel(logx.ParseLevel(cfg.LogLevel))
	logger.Debug("openhours starting",
		"version", version,
		"commit", commit,
		"provider", cfg.Provider.Name,
		"cache", cfg.Cache.Backend,
	)

	loc, err := cfg.Location()
	if err != nil {
		logger.Err(err, "phase", "config")
		return exitUsage
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		logger.Err(err, "phase", "catalog")
		return exitUsage
	}

	// 3. Context and signals; serve mode runs until interrupted
	timeoutS := cfg.TimeoutS
	if cfg.Serve {
		timeoutS = 0
	}
	ctx, cancel := rootContextWithSignals(timeoutS)
	defer cancel()

	// 4. Provider chain
	provider, cached, err := buildProvider(ctx, cfg, logger)
	if err != nil {
		logger.Err(err, "phase", "provider-build")
		return exitUsage
	}
	defer func() {
		if err := provider.Close(); err != nil {
			logger.Warn("failed to close provider", "provider", provider.Name(), "error", err.Error())
		}
	}()

	style := usecases.StyleCompat
	if cfg.Natural {
		style = usecases.StyleNatural
	}
	service := usecases.NewStatusService(usecases.StatusServiceOptions{
		Provider:  provider,
		Formatter: usecases.Formatter{Style: style},
		Location:  loc,
		Logger:    logger,
	})

	// 5. Mode
	switch {
	case cfg.Serve:
		return serve(ctx, cfg, service, cat, cached, logger)
	case cfg.All:
		return board(ctx, cfg, service, cat, stdout, logger)
	default:
		return check(ctx, cfg, service, cat, stdout, stderr, logger)
	}
}

func check(ctx context.Context, cfg config.Config, service *usecases.StatusService, cat *catalog.Catalog, stdout, stderr io.Writer, logger logx.Logger) int {
	facility, err := resolveFacility(cat, cfg.Facility, cfg.Name)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	now := evaluationTime(cfg, service)
	start := time.Now()
	report, checkErr := service.CheckAt(ctx, facility, now)

	if err := output.Render(stdout, cfg.Format, report, checkErr); err != nil {
		logger.Err(err, "phase", "output")
		return exitFailed
	}

	if checkErr != nil {
		logger.Err(checkErr, "phase", "check", "facility", facility.ID, "elapsed_ms", time.Since(start).Milliseconds())
		if errors.Is(checkErr, domain.ErrInvalidFacilityID) || errors.Is(checkErr, domain.ErrEmptyFacilityID) {
			return exitUsage
		}
		return exitFailed
	}
	return exitOK
}

func board(ctx context.Context, cfg config.Config, service *usecases.StatusService, cat *catalog.Catalog, stdout io.Writer, logger logx.Logger) int {
	b := usecases.NewBoard(service, cfg.Workers, logger)
	entries := b.CheckAllAt(ctx, cat.All(), evaluationTime(cfg, service))

	if err := output.RenderBoard(stdout, cfg.Format, entries); err != nil {
		logger.Err(err, "phase", "output")
		return exitFailed
	}

	for _, e := range entries {
		if e.Err != nil {
			return exitFailed
		}
	}
	return exitOK
}

func serve(ctx context.Context, cfg config.Config, service *usecases.StatusService, cat *catalog.Catalog, cached *cache.CachedProvider, logger logx.Logger) int {
	// sin cache no hay warmer
	var refresher webhook.Refresher
	if cached != nil {
		refresher = cached
	}

	srv := webhook.New(service, cat, refresher, webhook.Options{
		CORSOrigins:  cfg.Server.CORSOrigins,
		WarmInterval: cfg.Server.WarmInterval,
	}, logger)

	if err := srv.Run(ctx, cfg.Server.Addr); err != nil {
		logger.Err(err, "phase", "serve")
		return exitFailed
	}
	return exitOK
}

// evaluationTime is now, or --at on today's date in the facility zone.
func evaluationTime(cfg config.Config, service *usecases.StatusService) time.Time {
	now := service.Now()
	if cfg.At == "" {
		return now
	}
	// Validate ya comprobó el formato
	tod, err := domain.ParseClockTime(cfg.At)
	if err != nil {
		return now
	}
	return tod.On(now)
}

// rootContextWithSignals creates a root context with optional timeout and signal cancellation.
// Returns a context and cancel function that cleans up all resources (signals, goroutines).
func rootContextWithSignals(timeoutSeconds int) (context.Context, context.CancelFunc) {
	var base context.Context
	var baseCancel context.CancelFunc

	if timeoutSeconds > 0 {
		base, baseCancel = context.WithTimeout(context.Background(), time.Duration(timeoutSeconds)*time.Second)
	} else {
		base, baseCancel = context.WithCancel(context.Background())
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-ch:
			baseCancel()
		case <-base.Done():
		}
	}()

	return base, func() {
		signal.Stop(ch)
		baseCancel()
	}
}
