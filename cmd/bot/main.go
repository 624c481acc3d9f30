package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"StockPulse/internal/collector"
	"StockPulse/internal/config"
	"StockPulse/internal/logging"
	"StockPulse/internal/notifier"
	"StockPulse/internal/recorder"
	"StockPulse/internal/scheduler"
	"StockPulse/internal/watch"
)

func main() {
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfgPath).Msg("load config")
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Console)
	log.Info().Msg("StockPulse starting...")

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}

	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Info().Str("source", fetcher.Name()).Msg("data source ready")

	col := collector.NewCollector(fetcher)

	wm, err := watch.NewManager(cfg.Watch.StateFile)
	if err != nil {
		log.Fatal().Err(err).Msg("init watch manager")
	}

	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, col, wm, tn, rec, cfg.Watchlist, cfg.Period(), cfg.Schedule.Concurrency)
	if err := sched.RegisterAll(cfg.Schedule.DailyCron, cfg.Schedule.WeeklyCron); err != nil {
		log.Fatal().Err(err).Msg("register cron tasks")
	}
	sched.Start()
	defer sched.Stop()

	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Info().Msg("Telegram polling started")

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, executing daily analysis now")
		go sched.RunDailyNow()
	}

	log.Info().Strs("watchlist", cfg.Watchlist).Msg("StockPulse is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping...")
	cancel()
}
