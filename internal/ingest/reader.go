package ingest

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/coinwatch/tweet-scraper/internal/domain"
)

// Coin names and tickers become search keywords, so whitespace is not allowed.
var coinTokenRegex = regexp.MustCompile(`^\S+$`)

// LoadCoins reads a coin list CSV with a header row and `name,abbrv` columns.
// Malformed rows are skipped (fail-soft); an empty result is an error because
// a run with no targets is a mistake.
func LoadCoins(path string) ([]domain.Coin, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(stripBOM(f))
	r.FieldsPerRecord = -1

	var coins []domain.Coin
	line := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		line++
		if line == 1 {
			continue // skip header
		}
		if len(record) < 2 {
			continue
		}

		name := strings.TrimSpace(record[0])
		abbrv := strings.TrimSpace(record[1])
		if !coinTokenRegex.MatchString(name) || !coinTokenRegex.MatchString(abbrv) {
			continue
		}
		coins = append(coins, domain.Coin{Name: name, Abbrv: abbrv})
	}
	if len(coins) == 0 {
		return nil, fmt.Errorf("ingest: no valid coins in %s", path)
	}
	return coins, nil
}

func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	rn, _, err := br.ReadRune()
	if err != nil {
		return br
	}
	if rn != '\uFEFF' {
		br.UnreadRune()
	}
	return br
}
