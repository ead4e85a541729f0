package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-pg/pg/v10"
	"github.com/namsral/flag"

	"github.com/daniilsolovey/blog-portal/config"
	"github.com/daniilsolovey/blog-portal/internal/blog"
	"github.com/daniilsolovey/blog-portal/internal/db"
)

var (
	flConfig     = flag.String("config", "config.toml", "path to TOML configuration file (CONFIG)")
	flMigrations = flag.String("migrations", "migrations", "path to goose migrations directory (MIGRATIONS)")
	flDebug      = flag.Bool("debug", false, "enable debug mode (DEBUG)")
	cfg          config.Config
	lg           *slog.Logger
)

func main() {
	flag.Parse()

	lg = newLogger(*flDebug)

	_, err := toml.DecodeFile(*flConfig, &cfg)
	if err != nil {
		exitOnError(err)
	}

	opt, err := cfg.PGOptions()
	if err != nil {
		exitOnError(err)
	}

	ctx := context.Background()

	conn := pg.Connect(opt)
	defer conn.Close()

	if err := conn.Ping(ctx); err != nil {
		exitOnError(err)
	}

	if *flDebug {
		conn.AddQueryHook(db.NewQueryHook(lg))
	}

	if err := runMigrations(ctx, cfg.Database.URL, *flMigrations); err != nil {
		exitOnError(err)
	}
	lg.Info("migrations applied")

	manager := blog.NewManager(db.New(conn, lg), lg)
	if err := seed(ctx, manager); err != nil {
		exitOnError(err)
	}
	lg.Info("seed finished")
}

func newLogger(debug bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

func exitOnError(err error) {
	if err != nil {
		lg.Error("seed failed", "error", err)
		os.Exit(1)
	}
}
