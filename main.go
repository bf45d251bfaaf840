package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/coopernurse/vote-web/cache"
	"github.com/coopernurse/vote-web/cliparse"
	"github.com/coopernurse/vote-web/db"
	"github.com/coopernurse/vote-web/handlers"
	"github.com/coopernurse/vote-web/router"
	"github.com/coopernurse/vote-web/views"
)

func main() {
	var err error

	// A missing .env is fine, real env vars still apply
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not read .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	driver, err := db.DriverName(cfg.DatabaseType)
	if err != nil {
		slog.Error("unsupported database", "error", err)
		os.Exit(1)
	}

	opts := []db.Option{db.WithDriver(driver), db.WithDataSource(cfg.DatabaseURL)}
	if cfg.DatabaseType == db.TypeSQLite {
		// SQLite allows one writer at a time
		opts = append(opts, db.WithMaxOpenConns(1), db.WithConnMaxLifetime(0))
	}

	dbConn, err := db.Open(opts...)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(ctx, dbConn, cfg.DatabaseType); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	var results handlers.ResultCache = cache.Nop{}
	if cfg.RedisAddr != "" {
		redisCache, err := cache.New(ctx, cache.WithAddress(cfg.RedisAddr))
		if err != nil {
			slog.Error("redis connection failed", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		defer redisCache.Close()
		results = redisCache
		slog.Info("Results cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.ResultsTTL)
	}

	pages, err := views.New(cfg.TemplateDir)
	if err != nil {
		slog.Error("template loading failed", "error", err)
		os.Exit(1)
	}
	if cfg.TemplateDir != "" {
		slog.Info("Reloading templates from disk", "dir", cfg.TemplateDir)
	}

	// Create router
	mux := router.NewRouter(dbConn, cfg, pages, results)

	// Create server
	server := http.Server{
		Handler:           mux,
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "prod", cfg.ProdMode)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
