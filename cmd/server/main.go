package main

import (
	"log"
	"net/http"
	"os"

	"sketch-party/internal/config"
	"sketch-party/internal/db"
	"sketch-party/internal/game"
	"sketch-party/internal/server"
	"sketch-party/internal/words"

	"go.uber.org/zap"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger setup failed: %v", err)
	}
	defer logger.Sync()

	store, err := openStore(cfg, logger)
	if err != nil {
		logger.Fatal("store setup failed", zap.Error(err))
	}

	registry := game.NewRegistry(store, words.NewSource(), cfg.WordDifficulty, logger)
	defer registry.Shutdown()

	srv := server.New(store, registry, cfg, logger)

	addr := ":8080"
	if env := os.Getenv("PORT"); env != "" {
		addr = ":" + env
	}
	logger.Info("sketch-party server listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// openStore picks Postgres when DATABASE_URL is set and falls back to the
// in-memory store otherwise, so the server runs without a database.
func openStore(cfg config.Config, logger *zap.Logger) (game.Store, error) {
	if os.Getenv("DATABASE_URL") == "" {
		logger.Warn("DATABASE_URL not set; games will not survive restarts")
		return game.NewMemoryStore(), nil
	}
	conn, err := db.Open()
	if err != nil {
		return nil, err
	}
	if err := db.Configure(conn, cfg); err != nil {
		return nil, err
	}
	if err := db.Migrate(conn); err != nil {
		return nil, err
	}
	return db.NewStore(conn), nil
}
