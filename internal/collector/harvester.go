// Package collector drains a virtualized search feed: it repeatedly samples
// the rendered posts, scrolls, and decides when scrolling stops producing new
// distinct content. The feed has no end-of-feed marker, so exhaustion is
// behavioral: three consecutive samples that add nothing new.
package collector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/coinwatch/tweet-scraper/internal/domain"
)

var (
	// ErrSampleMismatch means the timestamp and tweet-body queries returned
	// different counts. Pairing them positionally would mis-attribute
	// timestamps, so the pass must not proceed.
	ErrSampleMismatch = errors.New("collector: different number of tweets and datetimes")

	// ErrScrollBudget means the scroll safety valve tripped before the feed
	// was exhausted.
	ErrScrollBudget = errors.New("collector: maximum number of scrolls reached")
)

// Stats counts what one harvest pass did.
type Stats struct {
	Scrolls int // iterations that issued a scroll command
	Stalls  int // samples that added no new posts
}

// HarvesterConfig tunes the scroll loop. Zero values take the production
// defaults; tests lower them to run against a scripted feed.
type HarvesterConfig struct {
	// Settle is the pause between scrolling and sampling. The page exposes no
	// render-complete signal, so this bounds the scroll/render race.
	// Default: 1.5s.
	Settle time.Duration

	// StallLimit is the number of consecutive no-growth samples treated as
	// feed exhaustion. Default: 3.
	StallLimit int

	// ScrollBudget caps total scroll iterations per pass. Default: 3200.
	ScrollBudget int

	Logger *slog.Logger
}

func (c *HarvesterConfig) defaults() {
	if c.Settle <= 0 {
		c.Settle = 1500 * time.Millisecond
	}
	if c.StallLimit <= 0 {
		c.StallLimit = 3
	}
	if c.ScrollBudget <= 0 {
		c.ScrollBudget = 3200
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Harvester runs the scroll/sample/dedup loop over one feed.
type Harvester struct {
	feed domain.Feed
	cfg  HarvesterConfig
}

func NewHarvester(feed domain.Feed, cfg HarvesterConfig) *Harvester {
	cfg.defaults()
	return &Harvester{feed: feed, cfg: cfg}
}

// Run scrolls the feed until StallLimit consecutive samples add nothing new,
// returning every distinct (timestamp, text) pair seen along the way. The
// accumulated set is returned even on error so callers can report its size,
// but it must not be exported after a failed pass.
func (h *Harvester) Run(ctx context.Context) (domain.PostSet, Stats, error) {
	acc := make(domain.PostSet)
	var stats Stats
	stall := 0

	for {
		if err := ctx.Err(); err != nil {
			return acc, stats, err
		}

		// Autoplaying videos re-render their tweet mid-extraction and
		// produce garbled duplicates; pause them before sampling.
		if err := h.feed.PauseMedia(ctx); err != nil {
			h.cfg.Logger.Warn("pause media failed", "error", err)
		}

		sleep(ctx, h.cfg.Settle)

		timestamps, texts, err := h.feed.Sample(ctx)
		if err != nil {
			return acc, stats, err
		}
		if len(timestamps) != len(texts) {
			return acc, stats, fmt.Errorf("%w: %d datetimes, %d tweets",
				ErrSampleMismatch, len(timestamps), len(texts))
		}

		before := len(acc)
		for i := range timestamps {
			acc.Add(domain.Post{Timestamp: timestamps[i], Text: texts[i]})
		}

		if len(acc) == before {
			stall++
			stats.Stalls++
			if stall >= h.cfg.StallLimit {
				h.cfg.Logger.Info("feed exhausted",
					"posts", len(acc), "scrolls", stats.Scrolls, "stalls", stats.Stalls)
				return acc, stats, nil
			}
			if err := h.feed.ScrollToBottom(ctx); err != nil {
				return acc, stats, err
			}
		} else {
			stall = 0
			// Anchor on the last known tweet so the next batch renders
			// directly below it instead of jumping past unseen content.
			if err := h.feed.ScrollToLast(ctx); err != nil {
				return acc, stats, err
			}
		}

		stats.Scrolls++
		if stats.Scrolls > h.cfg.ScrollBudget {
			return acc, stats, fmt.Errorf("%w: %d", ErrScrollBudget, stats.Scrolls)
		}
	}
}

func sleep(ctx context.Context, d time.Duration) {
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
