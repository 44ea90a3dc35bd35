package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/pribylovaa/spaceflight-bot/internal/cards"
	"github.com/pribylovaa/spaceflight-bot/internal/config"
	"github.com/pribylovaa/spaceflight-bot/internal/pkg/log"
	"github.com/pribylovaa/spaceflight-bot/internal/scraper"
	"github.com/pribylovaa/spaceflight-bot/internal/service"
	"github.com/pribylovaa/spaceflight-bot/internal/transport/discord"
)

// Константы для определения окружения.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	// .env подхватывается при локальной разработке; отсутствие файла — не ошибка.
	_ = godotenv.Load()

	cfg := config.MustLoad(configPath)

	logger := setupLogger(cfg.Env)
	slog.SetDefault(logger)
	logger.Info("starting spaceflight-bot", "env", cfg.Env)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	svc := service.New(
		scraper.New(cfg.Scraper),
		cards.NewRenderer(cfg.Scraper.BaseURL),
	)
	logger.Info("service_initialized")

	bot, err := discord.New(*cfg, svc)
	if err != nil {
		logger.Error("discord_init_failed", slog.String("err", err.Error()))
		rootCancel()
		os.Exit(1)
	}

	if err := bot.Run(log.Into(rootCtx, logger)); err != nil {
		logger.Error("bot_run_failed", slog.String("err", err.Error()))
		rootCancel()
		os.Exit(1)
	}

	logger.Info("bot_stopped")
	os.Exit(0)
}

// setupLogger настраивает slog по окружению.
func setupLogger(env string) *slog.Logger {
	var logger *slog.Logger

	switch env {
	case envLocal:
		logger = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		logger = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		logger = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		logger = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}

	return logger
}
