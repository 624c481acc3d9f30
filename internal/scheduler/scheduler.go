package scheduler

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"StockPulse/internal/collector"
	"StockPulse/internal/model"
	"StockPulse/internal/notifier"
	"StockPulse/internal/recorder"
	"StockPulse/internal/watch"
)

const historyLimit = 5

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron        *cron.Cron
	Collector   *collector.Collector
	Watch       *watch.Manager
	Notifier    *notifier.TelegramNotifier
	Recorder    recorder.Recorder
	Watchlist   []string
	Period      model.Period
	Concurrency int
	Ctx         context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, wm *watch.Manager, tn *notifier.TelegramNotifier,
	rec recorder.Recorder, watchlist []string, period model.Period, concurrency int) *Scheduler {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Scheduler{
		Cron:        cron.New(cron.WithSeconds()),
		Collector:   col,
		Watch:       wm,
		Notifier:    tn,
		Recorder:    rec,
		Watchlist:   watchlist,
		Period:      period,
		Concurrency: concurrency,
		Ctx:         ctx,
	}
}

// RegisterAll registers the daily analysis and the weekly digest.
func (s *Scheduler) RegisterAll(dailyCron, weeklyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	if _, err := s.Cron.AddFunc(weeklyCron, s.weeklyTask); err != nil {
		return fmt.Errorf("register weekly task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Int("entries", len(s.Cron.Entries())).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RunDailyNow executes the daily task immediately.
func (s *Scheduler) RunDailyNow() {
	s.dailyTask()
}

// analyzeAll analyzes the watchlist with bounded concurrency. Failed symbols
// are logged and skipped; the result keeps watchlist order.
func (s *Scheduler) analyzeAll(ctx context.Context) []*model.Analysis {
	results := make([]*model.Analysis, len(s.Watchlist))

	var g errgroup.Group
	g.SetLimit(s.Concurrency)
	for i, symbol := range s.Watchlist {
		i, symbol := i, symbol
		g.Go(func() error {
			a, err := s.Collector.Analyze(ctx, symbol, s.Period)
			if err != nil {
				log.Error().Err(err).Str("symbol", symbol).Msg("analysis failed")
				return nil
			}
			results[i] = a
			return nil
		})
	}
	_ = g.Wait()

	out := results[:0]
	for _, a := range results {
		if a != nil {
			out = append(out, a)
		}
	}
	return out
}

func (s *Scheduler) dailyTask() {
	log.Info().Int("symbols", len(s.Watchlist)).Msg("running daily analysis")
	analyses := s.analyzeAll(s.Ctx)

	for _, a := range analyses {
		if _, err := s.Recorder.RecordAnalysis(a); err != nil {
			log.Error().Err(err).Str("symbol", a.Symbol).Msg("record analysis")
		}
		changed, previous := s.Watch.Observe(a.Symbol, a.Summary)
		if !changed {
			continue
		}
		log.Info().
			Str("symbol", a.Symbol).
			Str("from", string(previous)).
			Str("to", string(a.Summary.Direction)).
			Msg("direction changed")
		s.trySend(notifier.FormatDirectionChange(a, previous))
	}

	if failed := len(s.Watchlist) - len(analyses); failed > 0 {
		s.trySend(fmt.Sprintf("❌ Daily analysis failed for %d of %d symbols", failed, len(s.Watchlist)))
	}
}

func (s *Scheduler) weeklyTask() {
	log.Info().Msg("running weekly digest")
	s.trySend(notifier.FormatDigest(s.analyzeAll(s.Ctx)))
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	// Strip a "@botname" suffix added in group chats.
	name, _, _ := strings.Cut(fields[0], "@")

	switch name {
	case "/analyze":
		if len(fields) < 2 {
			return "Usage: /analyze TICKER"
		}
		a, err := s.Collector.Analyze(ctx, fields[1], s.Period)
		if err != nil {
			return commandError(fields[1], err)
		}
		return notifier.FormatAdvisory(a)
	case "/watchlist":
		return s.formatWatchlist()
	case "/history":
		if len(fields) < 2 {
			return "Usage: /history TICKER"
		}
		return s.formatHistory(strings.ToUpper(fields[1]))
	default:
		return helpText
	}
}

const helpText = "Available commands:\n" +
	"• /analyze TICKER\n" +
	"• /watchlist\n" +
	"• /history TICKER"

func commandError(symbol string, err error) string {
	switch {
	case errors.Is(err, collector.ErrSymbolNotFound):
		return fmt.Sprintf("Unknown symbol %s", html.EscapeString(strings.ToUpper(symbol)))
	case errors.Is(err, collector.ErrNoHistory):
		return fmt.Sprintf("No historical data for %s", html.EscapeString(strings.ToUpper(symbol)))
	default:
		log.Error().Err(err).Str("symbol", symbol).Msg("command analysis failed")
		return "❌ Analysis failed, try again later"
	}
}

func (s *Scheduler) formatWatchlist() string {
	var b strings.Builder
	b.WriteString("👀 <b>Watchlist</b>\n\n")
	for _, symbol := range s.Watchlist {
		e, ok := s.Watch.Get(symbol)
		symbol = html.EscapeString(symbol)
		if !ok {
			b.WriteString(fmt.Sprintf("%s: not analyzed yet\n", symbol))
			continue
		}
		b.WriteString(fmt.Sprintf("%s: %s %d%% (%s)\n",
			symbol, e.Direction, e.Confidence, e.UpdatedAt.Format("2006-01-02 15:04")))
	}
	return b.String()
}

func (s *Scheduler) formatHistory(symbol string) string {
	runs, err := s.Recorder.RecentRuns(symbol, historyLimit)
	if err != nil {
		log.Error().Err(err).Str("symbol", symbol).Msg("load history")
		return "❌ Could not load history"
	}
	if len(runs) == 0 {
		return fmt.Sprintf("No recorded runs for %s", html.EscapeString(symbol))
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📜 <b>%s history</b>\n\n", html.EscapeString(symbol)))
	for _, r := range runs {
		b.WriteString(fmt.Sprintf("%s  %.2f  %s %d%%\n",
			r.Timestamp.Format("2006-01-02"), r.LastClose, r.Direction, r.Confidence))
	}
	return b.String()
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Error().Err(err).Msg("send notification")
	}
}
