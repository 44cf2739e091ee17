// Command rogain extracts checkpoint progress from a rogaine results page.
//
// Usage:
//
//	rogain extract [-config file] [-in page.html] [-out records.csv] [-sqlite runs.db]
//	rogain serve   [-config file] [-in page.html] [-addr host:port] [-reload]
//
// Flags override ROGAIN_* environment variables, which override the YAML
// configuration file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tsawler/rogain"
	"github.com/tsawler/rogain/export"
	"github.com/tsawler/rogain/internal/config"
	"github.com/tsawler/rogain/internal/logging"
	"github.com/tsawler/rogain/internal/server"
	"github.com/tsawler/rogain/model"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "rogain:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stderr)
		return errors.New("missing command")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch args[0] {
	case "extract":
		return runExtract(ctx, args[1:], stdout, stderr)
	case "serve":
		return runServe(ctx, args[1:], stderr)
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return nil
	default:
		usage(stderr)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `usage:
  rogain extract [-config file] [-in page.html] [-out records.csv] [-sqlite runs.db]
  rogain serve   [-config file] [-in page.html] [-addr host:port] [-reload]`)
}

// common holds the flags shared by every command.
type common struct {
	configPath string
	input      string
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&c.input, "in", "", "HTML results page")
}

// load resolves the configuration and sets up logging on stderr.
func (c *common) load(stderr io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, nil, err
	}
	if c.input != "" {
		cfg.Input.Path = c.input
	}
	if cfg.Input.Path == "" {
		return nil, nil, errors.New("no input page: use -in or ROGAIN_INPUT")
	}
	logger := logging.Setup(stderr, cfg.Logging.Level, cfg.Logging.Format)
	return cfg, logger, nil
}

// extractor builds an Extractor from the input configuration.
func extractor(in config.InputConfig, logger *slog.Logger) (*rogain.Extractor, error) {
	enc, err := in.Encoding()
	if err != nil {
		return nil, err
	}
	ext := rogain.Open(in.Path).
		MarkerAttr(in.MarkerAttr, in.MarkerValue).
		LabelCell(in.LabelCell).
		EndMarkers(in.EndMarkers...).
		Logger(logger)
	if enc != nil {
		ext = ext.Encoding(enc)
	}
	return ext, nil
}

func runExtract(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var (
		c      common
		out    string
		sqlite string
	)
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	fs.SetOutput(stderr)
	c.register(fs)
	fs.StringVar(&out, "out", "", "CSV output file (default stdout)")
	fs.StringVar(&sqlite, "sqlite", "", "SQLite database to store the run in")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, logger, err := c.load(stderr)
	if err != nil {
		return err
	}
	if out != "" {
		cfg.Output.CSV = out
	}
	if sqlite != "" {
		cfg.Output.SQLite = sqlite
	}

	ext, err := extractor(cfg.Input, logger)
	if err != nil {
		return err
	}
	records, _, err := ext.Records()
	if err != nil {
		return err
	}

	if err := writeCSV(cfg.Output.CSV, stdout, records); err != nil {
		return err
	}
	if cfg.Output.CSV != "" && cfg.Output.CSV != "-" {
		logger.Info("saved", "file", cfg.Output.CSV, "records", len(records))
	}

	if cfg.Output.SQLite != "" {
		store, err := export.OpenSQLite(cfg.Output.SQLite)
		if err != nil {
			return err
		}
		defer store.Close()
		id, err := store.Save(ctx, cfg.Input.Path, records)
		if err != nil {
			return err
		}
		logger.Info("stored run", "db", cfg.Output.SQLite, "run_id", id)
	}

	return nil
}

func writeCSV(path string, stdout io.Writer, records []model.Record) error {
	if path == "" || path == "-" {
		return export.WriteCSV(stdout, records)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := export.WriteCSV(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runServe(ctx context.Context, args []string, stderr io.Writer) error {
	var (
		c      common
		addr   string
		reload bool
	)
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	c.register(fs)
	fs.StringVar(&addr, "addr", "", "listen address (default from config)")
	fs.BoolVar(&reload, "reload", false, "re-read the page on every request")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, logger, err := c.load(stderr)
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Server.Addr()
	}

	load, err := loader(cfg.Input, logger, reload)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         addr,
		Handler:      server.New(load).Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr, "input", cfg.Input.Path, "reload", reload)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// loader extracts once up front, or on every call when reload is set.
func loader(in config.InputConfig, logger *slog.Logger, reload bool) (server.Loader, error) {
	if !reload {
		ext, err := extractor(in, logger)
		if err != nil {
			return nil, err
		}
		records, _, err := ext.Records()
		if err != nil {
			return nil, err
		}
		return server.Static(records), nil
	}

	return func(ctx context.Context) ([]model.Record, error) {
		start := time.Now()
		ext, err := extractor(in, logging.FromContext(ctx))
		if err != nil {
			return nil, err
		}
		records, _, err := ext.Records()
		if err != nil {
			return nil, err
		}
		logging.FromContext(ctx).Debug("reloaded", "records", len(records), "duration_ms", time.Since(start).Milliseconds())
		return records, nil
	}, nil
}
