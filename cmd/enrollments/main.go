// main is the entry point of the course registration program.
//
// STARTUP SEQUENCE:
//  1. Load configuration (env / YAML / defaults)
//  2. Initialise the logger
//  3. Pick the storage backend
//  4. Run the menu until the user chooses "Exit"
//
// RUNNING:
//
//	go run ./cmd/enrollments
//
// or with a config file:
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/enrollments
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aanand-mishra/enrollments/internal/config"
	"github.com/aanand-mishra/enrollments/internal/shell"
	"github.com/aanand-mishra/enrollments/internal/storage"
	"github.com/aanand-mishra/enrollments/internal/storage/jsonfile"
	"github.com/aanand-mishra/enrollments/internal/storage/sqlite"
	"github.com/aanand-mishra/enrollments/internal/storage/xlsx"
)

func main() {
	if err := run(os.Stdin, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "enrollments: %v\n", err)
		os.Exit(1)
	}
}

// run is main without the process globals, so tests can drive it.
// Only a bad configuration makes it return an error; everything that
// goes wrong during the session is reported on out and recovered.
func run(in io.Reader, out, logOut io.Writer, args []string) error {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// Logs go to logOut (stderr) so they never interleave with the menu.
	log := setupLogger(cfg.Env, logOut)

	log.Info("starting enrollments",
		slog.String("env", cfg.Env),
		slog.String("backend", cfg.Backend),
		slog.String("path", cfg.Path),
	)

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	// Stored as the storage.Storage INTERFACE; the shell never learns
	// which backend it is talking to.
	store := newStorage(cfg, log)

	// ── 4. Run the menu ───────────────────────────────────────────────────
	records := shell.New(in, out, store, log).Run()

	log.Info("session ended", slog.Int("records", len(records)))
	return nil
}

// newStorage maps the configured backend name to its implementation.
// config.Load has already rejected unknown names.
func newStorage(cfg *config.Config, log *slog.Logger) storage.Storage {
	switch cfg.Backend {
	case config.BackendSQLite:
		return sqlite.New(cfg.Path, log)
	case config.BackendXLSX:
		return xlsx.New(cfg.Path, log)
	default:
		return jsonfile.New(cfg.Path, log)
	}
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string, w io.Writer) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case "staging":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default: // "dev" and anything unrecognised
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
