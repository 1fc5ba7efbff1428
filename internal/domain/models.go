package domain

import "context"

// Post is one rendered tweet: the ISO-8601 timestamp from its permalink and
// the raw text blob exactly as displayed. The blob interleaves author name,
// handle, reply/retweet/like counts and any quoted tweet as newline-separated
// fragments; no decomposition is attempted.
type Post struct {
	Timestamp string
	Text      string
}

// PostSet deduplicates posts on the full (timestamp, text) pair. The rendered
// DOM exposes no tweet ID, so two posts agreeing on both fields are treated as
// the same logical post.
type PostSet map[Post]struct{}

func (s PostSet) Add(p Post) { s[p] = struct{}{} }

func (s PostSet) Slice() []Post {
	posts := make([]Post, 0, len(s))
	for p := range s {
		posts = append(posts, p)
	}
	return posts
}

// Coin represents a scraping target
type Coin struct {
	Name  string // e.g. "Bitcoin"
	Abbrv string // e.g. "BTC"
}

// Window is one day's half-open [Since, Until) search boundary, both "YYYY-MM-DD"
type Window struct {
	Since string
	Until string
}

// Feed is a live search-results page seen through its sliding render window.
// Only a slice of the feed exists in the DOM at a time; Sample reads what is
// currently rendered and the scroll calls move the window.
type Feed interface {
	// PauseMedia stops inline video playback before sampling.
	PauseMedia(ctx context.Context) error
	// Sample returns the currently rendered timestamps and tweet texts as two
	// independent ordered queries over the same visible region.
	Sample(ctx context.Context) (timestamps, texts []string, err error)
	// ScrollToLast scrolls to the location of the last sampled tweet so the
	// next batch renders directly below it.
	ScrollToLast(ctx context.Context) error
	// ScrollToBottom scrolls to the bottom of the document.
	ScrollToBottom(ctx context.Context) error
}

// Navigator drives the browser between search pages.
type Navigator interface {
	Navigate(ctx context.Context, url string) error
	// WaitFirstResult blocks until the first tweet timestamp renders or the
	// wait budget runs out.
	WaitFirstResult(ctx context.Context) error
}

// Sink persists one day's harvest.
type Sink interface {
	WriteDay(coin Coin, untilDay string, posts []Post) (path string, err error)
}
