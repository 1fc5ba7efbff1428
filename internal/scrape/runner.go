// Package scrape orchestrates a coin's run: walk the day range, navigate,
// drain the feed, export, and classify faults along the way.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/coinwatch/tweet-scraper/internal/browser"
	"github.com/coinwatch/tweet-scraper/internal/collector"
	"github.com/coinwatch/tweet-scraper/internal/domain"
	"github.com/coinwatch/tweet-scraper/internal/query"
	"github.com/coinwatch/tweet-scraper/internal/report"
	"github.com/coinwatch/tweet-scraper/internal/storage"
)

// maxConsecutiveFaults is how many session-level faults in a row abort the
// whole run.
const maxConsecutiveFaults = 5

type RunnerConfig struct {
	// InitialSettle is the extra wait after the first result appears; the
	// first screenful of tweets renders in waves.
	InitialSettle time.Duration

	// DayDelay paces day-to-day navigation.
	DayDelay time.Duration
}

// Runner walks consecutive day pairs for one coin. Fault policy: a
// content-wait timeout exports an empty day; a session fault retries the same
// day and aborts the run after maxConsecutiveFaults in a row; a sample
// mismatch aborts the run outright (mis-paired rows are worse than no rows);
// a blown scroll budget or any other fault is logged and skips the day.
type Runner struct {
	nav     domain.Navigator
	harv    *collector.Harvester
	sink    domain.Sink
	errlog  *storage.ErrorLog
	limiter *rate.Limiter
	cfg     RunnerConfig
	log     *slog.Logger
}

func NewRunner(nav domain.Navigator, harv *collector.Harvester, sink domain.Sink,
	errlog *storage.ErrorLog, cfg RunnerConfig, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	delay := cfg.DayDelay
	if delay <= 0 {
		delay = time.Second
	}
	return &Runner{
		nav:     nav,
		harv:    harv,
		sink:    sink,
		errlog:  errlog,
		limiter: rate.NewLimiter(rate.Every(delay), 1),
		cfg:     cfg,
		log:     logger,
	}
}

// Run scrapes every window [days[i], days[i+1]) in order and returns the
// per-day export counts. The returned summary covers whatever completed, even
// when the run aborts early.
func (r *Runner) Run(ctx context.Context, search query.Search, days []string) (report.CoinSummary, error) {
	coin := domain.Coin{Name: search.CoinName, Abbrv: search.CoinAbbrv}
	summary := report.CoinSummary{Coin: coin}
	faults := 0

	for i := 0; i+1 < len(days); {
		window := domain.Window{Since: days[i], Until: days[i+1]}

		posts, err := r.scrapeDay(ctx, search, window)
		if err != nil {
			switch {
			case errors.Is(err, browser.ErrNoResults):
				// The page loaded but nothing matched the thresholds:
				// still worth a blank file so the day is visibly covered.
				r.log.Warn("no results in window", "since", window.Since, "until", window.Until)
				r.errlog.Logf("Timeout - '%s'", window.Until)
				posts = nil

			case browser.IsSessionFault(err):
				faults++
				r.log.Error("session fault", "until", window.Until, "consecutive", faults, "error", err)
				if faults >= maxConsecutiveFaults {
					return summary, fmt.Errorf("scrape: %d consecutive session faults: %w", faults, err)
				}
				continue // retry the same day

			case errors.Is(err, collector.ErrSampleMismatch):
				return summary, err

			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				return summary, err

			case errors.Is(err, collector.ErrScrollBudget):
				// Partial harvest is discarded; a day that overflowed the
				// budget cannot be trusted to be complete.
				r.log.Error("scroll budget exhausted", "until", window.Until, "error", err)
				r.errlog.Logf("End Date: %s. Error: '%v'", window.Until, err)
				i++
				continue

			default:
				r.log.Error("day failed", "until", window.Until, "error", err)
				r.errlog.Logf("End Date: %s. Error: '%v'", window.Until, err)
				i++
				continue
			}
		}
		faults = 0

		path, werr := r.sink.WriteDay(coin, window.Until, posts)
		if werr != nil {
			r.log.Error("export failed", "until", window.Until, "error", werr)
			r.errlog.Logf("End Date: %s. Error: '%v'", window.Until, werr)
			i++
			continue
		}
		summary.Days = append(summary.Days, report.DayCount{Day: window.Until, Posts: len(posts)})
		r.log.Info("day exported", "file", path, "posts", len(posts))

		if err := r.limiter.Wait(ctx); err != nil {
			return summary, err
		}
		i++
	}
	return summary, nil
}

func (r *Runner) scrapeDay(ctx context.Context, search query.Search, window domain.Window) ([]domain.Post, error) {
	url := search.URL(window.Since, window.Until)
	if err := r.nav.Navigate(ctx, url); err != nil {
		return nil, err
	}
	if err := r.nav.WaitFirstResult(ctx); err != nil {
		return nil, err
	}
	settle(ctx, r.cfg.InitialSettle)

	set, stats, err := r.harv.Run(ctx)
	if err != nil {
		return nil, err
	}
	r.log.Info("window harvested",
		"since", window.Since, "until", window.Until,
		"posts", len(set), "scrolls", stats.Scrolls, "stalls", stats.Stalls)
	return set.Slice(), nil
}

func settle(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
