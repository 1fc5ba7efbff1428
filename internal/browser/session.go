// Package browser manages the Chrome session driven through Rod: launch from
// an explicit binary path, stealth page setup, navigation, and the bounded
// wait for first search results.
package browser

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"
)

// Config configures the browser session.
type Config struct {
	// Bin is the path to the Chrome/Chromium executable.
	Bin string

	// Headless runs Chrome without a window. Default: headful, matching how
	// Twitter search behaves least suspiciously.
	Headless bool

	// NavTimeout bounds one page navigation. Default: 30s.
	NavTimeout time.Duration

	// FirstResultWait bounds the wait for the first <time> element after
	// navigation. Default: 30s.
	FirstResultWait time.Duration

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.NavTimeout <= 0 {
		c.NavTimeout = 30 * time.Second
	}
	if c.FirstResultWait <= 0 {
		c.FirstResultWait = 30 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Session is the single exclusively-owned Chrome session. It lives for the
// whole run and must be closed on every exit path.
type Session struct {
	cfg     Config
	lnch    *launcher.Launcher
	browser *rod.Browser
	page    *rod.Page
}

// Open launches Chrome from cfg.Bin, connects Rod, and opens one stealth page
// that all navigation reuses.
func Open(cfg Config) (*Session, error) {
	cfg.defaults()

	l := launcher.New().
		Bin(cfg.Bin).
		Headless(cfg.Headless).
		Set("disable-blink-features", "AutomationControlled")

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("browser: launch %s: %w", cfg.Bin, err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("browser: connect: %w", err)
	}

	page, err := stealth.Page(b)
	if err != nil {
		b.Close()
		l.Cleanup()
		return nil, fmt.Errorf("browser: stealth page: %w", err)
	}

	cfg.Logger.Info("browser: session open", "bin", cfg.Bin, "headless", cfg.Headless)

	return &Session{cfg: cfg, lnch: l, browser: b, page: page}, nil
}

// Page returns the session's page handle.
func (s *Session) Page() *rod.Page { return s.page }

// Navigate loads the search URL and waits for the load event. A load-event
// timeout alone is not fatal; the first-result wait decides whether the page
// produced anything.
func (s *Session) Navigate(ctx context.Context, url string) error {
	navCtx, cancel := context.WithTimeout(ctx, s.cfg.NavTimeout)
	defer cancel()

	p := s.page.Context(navCtx)
	if err := p.Navigate(url); err != nil {
		return Fault("navigate", err)
	}
	if err := p.WaitLoad(); err != nil {
		s.cfg.Logger.Warn("browser: wait load timeout", "url", url, "error", err)
	}
	return nil
}

// WaitFirstResult blocks until the first tweet timestamp element appears.
// Returns ErrNoResults when the budget runs out with the page otherwise
// healthy, or a SessionError on a driver fault.
func (s *Session) WaitFirstResult(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, s.cfg.FirstResultWait)
	defer cancel()

	if _, err := s.page.Context(waitCtx).Element("time"); err != nil {
		if waitCtx.Err() != nil && ctx.Err() == nil {
			return fmt.Errorf("%w: no <time> element within %s", ErrNoResults, s.cfg.FirstResultWait)
		}
		return Fault("wait first result", err)
	}
	return nil
}

// Close shuts down Chrome and the launcher. Safe to defer from any path.
func (s *Session) Close() {
	if s.browser != nil {
		s.browser.Close()
	}
	if s.lnch != nil {
		s.lnch.Cleanup()
	}
	s.cfg.Logger.Info("browser: session closed")
}
