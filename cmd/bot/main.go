package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"fintrack/internal/bot"
	"fintrack/internal/config"
	"fintrack/internal/db"
	"fintrack/internal/identity"
	"fintrack/internal/ledger"
	"fintrack/internal/store"
	"fintrack/internal/weather"
	"fintrack/internal/websocket"
)

func main() {
	cfg := config.Load()
	logger := newLogger(cfg.AppEnv)
	defer func() { _ = logger.Sync() }()

	if cfg.BotToken == "" {
		logger.Fatal("TELEGRAM_BOT_TOKEN is not set")
	}

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}
	defer database.Close()

	users := store.NewUserStore(database)
	records := store.NewRecordStore(database)
	payments := store.NewPaymentStore(database)
	rateStore := store.NewRateStore(database)
	txRunner := db.NewTxRunner(database)
	hub := websocket.NewHub()
	ledgerService := ledger.NewService(txRunner, records, payments, hub)
	syncer := identity.NewSyncer(database, users)
	weatherClient := weather.NewClient(cfg.GeocodingURL, cfg.WeatherURL)

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		logger.Fatal("failed to connect telegram", zap.Error(err))
	}
	logger.Info("bot authorized", zap.String("username", api.Self.UserName))

	handler := bot.NewHandler(api, syncer, ledgerService, rateStore, weatherClient, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The server binary owns the hourly rate poller; the bot only reads the
	// stored snapshots, so running two pollers would race on the upsert.
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30
	updates := api.GetUpdatesChan(updateConfig)

	go func() {
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
		<-shutdown
		cancel()
		api.StopReceivingUpdates()
	}()

	for update := range updates {
		handler.HandleUpdate(ctx, update)
	}
}

func newLogger(appEnv string) *zap.Logger {
	if appEnv == "development" {
		logger, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		return logger
	}
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	return logger
}
