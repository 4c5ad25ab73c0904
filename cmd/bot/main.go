package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/nguyenviet02/tele-bot/internal/bot"
	"github.com/nguyenviet02/tele-bot/internal/config"
	"github.com/nguyenviet02/tele-bot/internal/logger"
	"github.com/nguyenviet02/tele-bot/internal/policy"
	"github.com/nguyenviet02/tele-bot/internal/repo"
	"github.com/nguyenviet02/tele-bot/internal/storage"
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	botAPI, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatal().Err(err).Msg("bot init")
	}
	botAPI.Debug = false

	store := storage.New(log)
	foods := repo.NewFoods(store, cfg.FoodListPath, cfg.FoodCachePath, cfg.CacheTTL, log)
	debts := repo.NewDebts(store, cfg.DebtsPath, log)
	restricted := policy.New(cfg.RestrictedUsers)

	h := bot.NewHandler(botAPI, cfg, foods, debts, restricted, log)

	// Graceful shutdown
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		cancel()
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := botAPI.GetUpdatesChan(u)

	log.Info().Str("username", botAPI.Self.UserName).Msg("food bot started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("shutdown")
			return
		case upd := <-updates:
			h.HandleUpdate(upd)
		}
	}
}
