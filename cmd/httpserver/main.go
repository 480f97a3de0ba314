package main

import (
	"fmt"
	"log/slog"
	"os"

	sentrygo "github.com/getsentry/sentry-go"
	_ "github.com/lib/pq"

	"filmoteca/httpserver"
	"filmoteca/movie"
	"filmoteca/pkg/config"
	"filmoteca/pkg/sentry"
	"filmoteca/postgres"
	"filmoteca/tmdb"
	"filmoteca/user"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Cannot load config", "error", err)
		os.Exit(1)
	}

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		slog.Error("Cannot init sentry", "error", err)
		os.Exit(1)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     fmt.Sprintf("%d", cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		slog.Error("Cannot open postgres connection", "error", err)
		os.Exit(1)
	}

	if err := postgres.AutoMigrate(db); err != nil {
		slog.Error("Cannot create tables", "error", err)
		os.Exit(1)
	}

	catalog := tmdb.NewClient(cfg.TMDB.BaseURL, cfg.TMDB.APIKey, cfg.TMDB.Language, nil, logger)

	server := httpserver.Default(cfg)
	server.MovieService = movie.NewUsecase(postgres.NewMovieRepository(db), catalog)
	server.UserService = user.NewUsecase(postgres.NewUserRepository(db))
	if cfg.Port != 0 {
		server.Addr = fmt.Sprintf(":%d", cfg.Port)
	}

	slog.Info("server started!", "addr", server.Addr)
	if err := server.Start(); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}
