// tmdbseed imports catalog movies from the command line, either the current
// popular page or a single record by tmdb id. It reuses the same mapping and
// dedup rules as the HTTP import endpoints.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/lib/pq"

	"filmoteca/movie"
	"filmoteca/pkg/config"
	"filmoteca/postgres"
	"filmoteca/tmdb"
)

func main() {
	var (
		tmdbID  int64
		timeout time.Duration
	)

	flag.Int64Var(&tmdbID, "id", 0, "Import a single movie by tmdb id (0 = popular page)")
	flag.DurationVar(&timeout, "timeout", time.Minute, "Overall import deadline")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     fmt.Sprintf("%d", cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		slog.Error("cannot open postgres connection", "error", err)
		os.Exit(1)
	}

	if err := postgres.AutoMigrate(db); err != nil {
		slog.Error("cannot create tables", "error", err)
		os.Exit(1)
	}

	catalog := tmdb.NewClient(cfg.TMDB.BaseURL, cfg.TMDB.APIKey, cfg.TMDB.Language, nil, logger)
	uc := movie.NewUsecase(postgres.NewMovieRepository(db), catalog)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if tmdbID > 0 {
		m, created, err := uc.ImportByTmdbID(ctx, tmdbID)
		if err != nil {
			slog.Error("import failed", "tmdb_id", tmdbID, "error", err)
			os.Exit(1)
		}
		slog.Info("import completed", "tmdb_id", m.TmdbID, "title", m.Title, "created", created)
		return
	}

	count, err := uc.ImportPopular(ctx)
	if err != nil {
		slog.Error("import failed", "error", err)
		os.Exit(1)
	}

	slog.Info("import completed", "rows", count)
}
