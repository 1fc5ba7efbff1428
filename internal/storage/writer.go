package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/coinwatch/tweet-scraper/internal/domain"
)

// CSVSink writes one file per scraped day under <Root>/<coin name>/,
// named <abbrv>_tweets_<until-day>.csv. Row order carries no meaning.
type CSVSink struct {
	Root string
}

// WriteDay writes the header row plus one row per post, creating the coin
// folder if missing. An empty day still produces a header-only file.
func (s *CSVSink) WriteDay(coin domain.Coin, untilDay string, posts []domain.Post) (string, error) {
	dir := filepath.Join(s.Root, coin.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: create folder %s: %w", dir, err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_tweets_%s.csv", coin.Abbrv, untilDay))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("storage: create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"datetime", "tweet"}); err != nil {
		f.Close()
		return "", fmt.Errorf("storage: write header: %w", err)
	}
	for _, p := range posts {
		if err := w.Write([]string{p.Timestamp, p.Text}); err != nil {
			f.Close()
			return "", fmt.Errorf("storage: write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return "", fmt.Errorf("storage: flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("storage: close %s: %w", path, err)
	}
	return path, nil
}
