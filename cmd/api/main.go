package main

import (
	"context"

	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/config"
	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/db"
	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/logger"
	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/model"
	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/server"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Init("production")
		logger.Fatal().Err(err).Msg("config load failed")
	}
	logger.Init(cfg.Env)

	conn, err := db.Connect(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("db connect failed")
	}
	if err := conn.AutoMigrate(
		&model.Category{},
		&model.Ad{},
		&model.Conversation{},
		&model.Message{},
	); err != nil {
		logger.Fatal().Err(err).Msg("auto migrate failed")
	}

	srv, err := server.New(context.Background(), cfg, conn)
	if err != nil {
		logger.Fatal().Err(err).Msg("server init failed")
	}

	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Msg("starting server")
	if err := srv.Start(addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
