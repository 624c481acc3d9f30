package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"StockPulse/internal/collector"
	"StockPulse/internal/logging"
	"StockPulse/internal/model"
	"StockPulse/internal/notifier"
)

func main() {
	symbol := flag.String("symbol", "", "ticker symbol, e.g. AAPL")
	periodFlag := flag.String("period", string(model.DefaultPeriod), "history window: 1mo, 3mo, 6mo, 1y, 2y")
	rows := flag.Int("rows", 10, "number of trailing rows in the indicator table")
	asJSON := flag.Bool("json", false, "print the full analysis as JSON")
	baseURL := flag.String("source", os.Getenv("BARS_BASE_URL"), "REST bars endpoint; Yahoo Finance when empty")
	mock := flag.Bool("mock", false, "use generated bars instead of a live source")
	flag.Parse()

	logging.Setup(envOr("LOG_LEVEL", "warn"), true)

	if *symbol == "" {
		flag.Usage()
		os.Exit(2)
	}
	period, err := model.ParsePeriod(*periodFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid period")
	}

	var fetcher collector.Fetcher
	switch {
	case *mock:
		fetcher = &collector.MockFetcher{Price: 100}
	case *baseURL != "":
		fetcher = collector.NewRESTFetcher(*baseURL, os.Getenv("BARS_API_KEY"), os.Getenv("HTTPS_PROXY"))
	default:
		fetcher = collector.NewYahooFetcher(os.Getenv("HTTPS_PROXY"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a, err := collector.NewCollector(fetcher).Analyze(ctx, *symbol, period)
	if err != nil {
		log.Fatal().Err(err).Str("symbol", *symbol).Msg("analysis failed")
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(a); err != nil {
			log.Fatal().Err(err).Msg("encode json")
		}
		return
	}

	fmt.Print(notifier.FormatTable(a, *rows))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
