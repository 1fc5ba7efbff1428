package collector

import (
	"context"

	"github.com/go-rod/rod"

	"github.com/coinwatch/tweet-scraper/internal/browser"
)

// BrowserFeed reads the live search-results page through a Rod session. All
// driver faults come back wrapped as browser.SessionError so the orchestrator
// can retry the day.
type BrowserFeed struct {
	page *rod.Page
	last *rod.Element // last tweet container from the previous Sample
}

func NewBrowserFeed(page *rod.Page) *BrowserFeed {
	return &BrowserFeed{page: page}
}

func (f *BrowserFeed) PauseMedia(ctx context.Context) error {
	_, err := f.page.Context(ctx).Eval(
		`() => document.querySelectorAll('video').forEach(vid => vid.pause())`)
	if err != nil {
		return browser.Fault("pause media", err)
	}
	return nil
}

// Sample queries the rendered timestamps and tweet bodies as two independent
// selector passes over the visible region and remembers the last tweet
// element for ScrollToLast.
func (f *BrowserFeed) Sample(ctx context.Context) ([]string, []string, error) {
	p := f.page.Context(ctx)

	times, err := p.Elements(selTimestamp)
	if err != nil {
		return nil, nil, browser.Fault("query timestamps", err)
	}
	timestamps := make([]string, 0, len(times))
	for _, el := range times {
		v, err := el.Attribute(attrDatetime)
		if err != nil {
			return nil, nil, browser.Fault("read datetime", err)
		}
		if v == nil {
			// Keep positional pairing even if the attribute is missing.
			timestamps = append(timestamps, "")
			continue
		}
		timestamps = append(timestamps, *v)
	}

	tweets, err := p.Elements(selTweet)
	if err != nil {
		return nil, nil, browser.Fault("query tweets", err)
	}
	texts := make([]string, 0, len(tweets))
	for _, el := range tweets {
		t, err := el.Text()
		if err != nil {
			return nil, nil, browser.Fault("read tweet text", err)
		}
		texts = append(texts, t)
	}

	if len(tweets) > 0 {
		f.last = tweets[len(tweets)-1]
	} else {
		f.last = nil
	}
	return timestamps, texts, nil
}

func (f *BrowserFeed) ScrollToLast(ctx context.Context) error {
	if f.last == nil {
		return nil
	}
	shape, err := f.last.Context(ctx).Shape()
	if err != nil {
		return browser.Fault("locate last tweet", err)
	}
	box := shape.Box()
	if box == nil {
		return nil
	}
	_, err = f.page.Context(ctx).Eval(`(x, y) => window.scrollTo(x, y)`, box.X, box.Y)
	if err != nil {
		return browser.Fault("scroll to last tweet", err)
	}
	return nil
}

func (f *BrowserFeed) ScrollToBottom(ctx context.Context) error {
	_, err := f.page.Context(ctx).Eval(
		`() => window.scrollTo(0, document.body.scrollHeight)`)
	if err != nil {
		return browser.Fault("scroll to bottom", err)
	}
	return nil
}
