package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/bgrant/devnotes/internal/config"
	"github.com/bgrant/devnotes/internal/db"
	"github.com/bgrant/devnotes/internal/logging"
	"github.com/bgrant/devnotes/internal/server"
	"github.com/bgrant/devnotes/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	docs := store.NewDocumentStore(database)
	srv := server.New(docs, cfg.AllowedOrigins, logger)

	if err := srv.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}
