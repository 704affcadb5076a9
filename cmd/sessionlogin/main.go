package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"sessionlogin/internal/config"
	"sessionlogin/internal/logger"
	"sessionlogin/internal/routing"
	"sessionlogin/pkg/user"
)

func main() {
	cfg, err := config.Load() // load env var from .env
	if err != nil {
		log.Fatal(err)
	}

	logger, sync, err := logger.Load(cfg.LogLevel, cfg.Production)
	if err != nil {
		log.Fatal("logger:", err)
	}
	defer sync()

	checker, err := user.NewService()
	if err != nil {
		log.Fatal("credentials:", err)
	}

	h, err := routing.NewHandler(cfg, checker, logger)
	if err != nil {
		log.Fatal("routing:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := routing.StartServer(ctx, cfg.Addr, h, logger); err != nil {
		logger.Error("server failed", "error", err)
	}
}
