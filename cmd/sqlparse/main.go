// Package main implements the command line interface for sqlparse.
//
// EDUCATIONAL NOTES:
// ------------------
// This is the entry point for the parser tools. It provides:
// 1. A REPL (Read-Eval-Print Loop) that prints the syntax tree of each
//    statement typed at the prompt
// 2. An HTTP server exposing the same parser as a JSON API (-addr)
// 3. Command-line flags for logging and output configuration
//
// Both modes stop cleanly on SIGINT or SIGTERM.

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"

	"github.com/cabewaldrop/sqlparse/internal/logging"
	"github.com/cabewaldrop/sqlparse/internal/repl"
	"github.com/cabewaldrop/sqlparse/internal/web"
)

const (
	version = "0.1.0"
	banner  = `
  sqlparse - a SQL parser for SELECT and CREATE TABLE - Version %s
  Type '.help' for usage hints or 'exit' to quit.

`
)

// config holds the parsed command line.
type config struct {
	addr        string
	logLevel    string
	logFormat   string
	logFile     string
	noColor     bool
	mode        string
	showVersion bool
}

func parseFlags(args []string) (config, error) {
	var cfg config

	fs := flag.NewFlagSet("sqlparse", flag.ContinueOnError)
	fs.StringVar(&cfg.addr, "addr", "", "Serve the HTTP API on this address (e.g. :8080) instead of starting the REPL")
	fs.StringVar(&cfg.logLevel, "log-level", "INFO", "Log level: DEBUG, INFO, WARN or ERROR")
	fs.StringVar(&cfg.logFormat, "log-format", logging.FormatText, "Log format: text or json")
	fs.StringVar(&cfg.logFile, "log-file", "", "Write logs to this file instead of stderr")
	fs.BoolVar(&cfg.noColor, "no-color", false, "Disable syntax highlighting")
	fs.StringVar(&cfg.mode, "mode", string(repl.ModeTree), "REPL output: tree or sql")
	fs.BoolVar(&cfg.showVersion, "version", false, "Show version and exit")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	if cfg.showVersion {
		fmt.Printf("sqlparse version %s\n", version)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config) error {
	level, err := logging.ParseLevel(cfg.logLevel)
	if err != nil {
		return err
	}
	mode, err := repl.ParseMode(cfg.mode)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(logging.Config{
		Level:      level,
		Format:     cfg.logFormat,
		OutputPath: cfg.logFile,
	})
	if err != nil {
		return errors.Wrap(err, "configure logging")
	}
	defer closeLog()

	if cfg.addr != "" {
		return serve(ctx, cfg.addr, logger)
	}

	fmt.Printf(banner, version)

	r := repl.New(os.Stdin, os.Stdout, repl.Options{
		Mode:   mode,
		Color:  !cfg.noColor,
		Logger: logger,
	})
	if err := r.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func serve(ctx context.Context, addr string, logger *slog.Logger) error {
	srv := web.NewServer(addr, logger)
	if err := srv.Run(ctx); err != nil {
		return errors.Wrap(err, "http server")
	}
	return nil
}
