package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/adfharrison1/go-logindex/pkg/config"
	"github.com/adfharrison1/go-logindex/pkg/domain"
	"github.com/adfharrison1/go-logindex/pkg/pipeline"
	"github.com/adfharrison1/go-logindex/pkg/query"
	"github.com/adfharrison1/go-logindex/pkg/server"
	"github.com/adfharrison1/go-logindex/pkg/storage"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	log.SetOutput(stderr)

	fs := flag.NewFlagSet("go-logindex", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		logPath     = fs.String("log", config.DefaultLogPath, "Access log to index")
		resultsPath = fs.String("results", config.DefaultResultsPath, "Results file (.json or .lidx)")
		configPath  = fs.String("config", "", "Optional config file (yaml, json or toml)")
		lenient     = fs.Bool("lenient", false, "Skip malformed log lines instead of failing the build")
		compression = fs.String("compression", config.DefaultCompression, "Codec for .lidx results: none, lz4 or snappy")
		rebuild     = fs.Bool("rebuild", false, "Rescan the log before answering")
		clean       = fs.Bool("clean", false, "Delete the results file and exit")
		serve       = fs.Bool("serve", false, "Serve the HTTP query API instead of answering once")
		listenAddr  = fs.String("listen", config.DefaultListenAddr, "Listen address for -serve")
	)

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: go-logindex [flags] <term> [limit]\n")
		fmt.Fprintf(stderr, "\ngo-logindex indexes an access log by IP and endpoint and answers top-N queries.\n")
		fmt.Fprintf(stderr, "An empty term (\"\") prints the global summary.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  go-logindex \"\" 5                     # Top 5 endpoints and IPs\n")
		fmt.Fprintf(stderr, "  go-logindex 203.0.113.5              # Breakdown for one IP\n")
		fmt.Fprintf(stderr, "  go-logindex -results cache.lidx /api # Binary results file\n")
		fmt.Fprintf(stderr, "  go-logindex -serve -listen :9090     # HTTP query API\n")
		fmt.Fprintf(stderr, "  go-logindex -clean                   # Drop cached results\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "go-logindex: %v\n", err)
		return exitError
	}

	// Flags given on the command line win over config and environment.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log":
			cfg.LogPath = *logPath
		case "results":
			cfg.ResultsPath = *resultsPath
		case "lenient":
			cfg.Lenient = *lenient
		case "compression":
			cfg.Compression = *compression
		case "listen":
			cfg.ListenAddr = *listenAddr
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "go-logindex: %v\n", err)
		return exitUsage
	}

	store := storage.NewStore(cfg.ResultsPath, cfg.StoreOptions()...)
	builder := pipeline.NewBuilder(store, pipeline.WithLenient(cfg.Lenient))
	engine := query.NewEngine(store, builder, cfg.LogPath)

	if *clean {
		if err := engine.Clean(); err != nil {
			return reportError(stderr, err)
		}
		return exitOK
	}

	if *serve {
		return serveHTTP(engine, cfg, stderr)
	}

	if *rebuild {
		stats, err := engine.Rebuild()
		if err != nil {
			return reportError(stderr, err)
		}
		log.Printf("INFO: Build %s indexed %d of %d lines in %s", stats.BuildID, stats.Events, stats.Lines, stats.Duration)
		if fs.NArg() == 0 {
			return writeResult(stdout, stderr, stats)
		}
	}

	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		return exitUsage
	}

	term := fs.Arg(0)
	limit := cfg.Limit
	if fs.NArg() == 2 {
		limit, err = strconv.Atoi(fs.Arg(1))
		if err != nil {
			fmt.Fprintf(stderr, "go-logindex: limit %q is not an integer\n", fs.Arg(1))
			return exitUsage
		}
	}

	result, err := engine.Query(term, limit)
	if err != nil {
		return reportError(stderr, err)
	}
	return writeResult(stdout, stderr, result)
}

func writeResult(stdout, stderr io.Writer, v interface{}) int {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(stderr, "go-logindex: failed to encode result: %v\n", err)
		return exitError
	}
	fmt.Fprintln(stdout, string(out))
	return exitOK
}

func reportError(stderr io.Writer, err error) int {
	if errors.Is(err, domain.ErrSourceNotFound) {
		fmt.Fprintln(stderr, "File not found!")
		return exitError
	}
	fmt.Fprintf(stderr, "go-logindex: %v\n", err)
	return exitError
}

func serveHTTP(engine *query.Engine, cfg config.Config, stderr io.Writer) int {
	srv := server.NewServer(engine, cfg.Limit)

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: srv.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("INFO: Starting go-logindex server on %s", cfg.ListenAddr)
		log.Printf("INFO: Answering from %s (log %s)", cfg.ResultsPath, cfg.LogPath)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		fmt.Fprintf(stderr, "go-logindex: server failed to start: %v\n", err)
		return exitError
	case <-quit:
	}
	log.Println("INFO: Shutting down server...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		fmt.Fprintf(stderr, "go-logindex: server forced to shutdown: %v\n", err)
		return exitError
	}

	log.Println("INFO: Server exited")
	return exitOK
}
