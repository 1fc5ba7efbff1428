package collector

import (
	"fmt"

	"github.com/coinwatch/tweet-scraper/internal/browser"
	"github.com/coinwatch/tweet-scraper/internal/domain"
)

// NewStack selects the navigator/feed pair for the given mode. "browser"
// drives the live Chrome session; "mock" replays a scripted feed so the
// pipeline can run without a browser.
func NewStack(mode string, session *browser.Session) (domain.Navigator, domain.Feed, error) {
	switch mode {
	case "", "browser":
		if session == nil {
			return nil, nil, fmt.Errorf("collector: browser mode needs an open session")
		}
		return session, NewBrowserFeed(session.Page()), nil
	case "mock":
		feed := NewMockFeed(demoBatches()...)
		return MockNavigator{Feed: feed}, feed, nil
	default:
		return nil, nil, fmt.Errorf("collector: unknown mode: %s (use 'browser' or 'mock')", mode)
	}
}
