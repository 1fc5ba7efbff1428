// Package query builds Twitter search URLs and the day ranges that drive them.
// Everything here is pure: no network, no clock, no side effects.
package query

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const dayFormat = "2006-01-02"

// ErrInvalidRange means a date could not be parsed as YYYY-MM-DD or the end
// date precedes the start date.
var ErrInvalidRange = errors.New("query: invalid date range")

// Search holds the fixed parameters of a coin search. The day window varies
// per scraped day and is supplied to URL.
type Search struct {
	CoinName    string
	CoinAbbrv   string
	MinReplies  int
	MinFaves    int
	MinRetweets int
	Language    string
	Page        string // "top" or "latest"
}

// URL builds the percent-encoded search URL for one [since, until) day window:
// tweets containing CoinName OR CoinAbbrv, meeting all three engagement
// minimums, in Language, ordered by Page. Identical inputs always yield the
// byte-identical string.
func (s Search) URL(since, until string) string {
	return fmt.Sprintf("https://twitter.com/search?q=(%s%%20OR%%20%s)"+
		"%%20min_replies%%3A%d"+
		"%%20min_faves%%3A%d"+
		"%%20min_retweets%%3A%d"+
		"%%20lang%%3A%s"+
		"%%20until%%3A%s"+
		"%%20since%%3A%s"+
		"&src=typed_query&f=%s",
		s.CoinName, s.CoinAbbrv,
		s.MinReplies, s.MinFaves, s.MinRetweets,
		s.Language, until, since,
		strings.ToLower(s.Page))
}

// DateRange returns every calendar day from start through end inclusive,
// formatted YYYY-MM-DD.
func DateRange(start, end string) ([]string, error) {
	s, err := time.Parse(dayFormat, start)
	if err != nil {
		return nil, fmt.Errorf("%w: start %q: %v", ErrInvalidRange, start, err)
	}
	e, err := time.Parse(dayFormat, end)
	if err != nil {
		return nil, fmt.Errorf("%w: end %q: %v", ErrInvalidRange, end, err)
	}
	if e.Before(s) {
		return nil, fmt.Errorf("%w: end %s before start %s", ErrInvalidRange, end, start)
	}

	var days []string
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(dayFormat))
	}
	return days, nil
}
