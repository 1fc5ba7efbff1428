package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinwatch/tweet-scraper/internal/domain"
)

func TestWriteRendersCharts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	summaries := []CoinSummary{
		{
			Coin: domain.Coin{Name: "Bitcoin", Abbrv: "BTC"},
			Days: []DayCount{{Day: "2022-01-02", Posts: 10}, {Day: "2022-01-03", Posts: 4}},
		},
		{
			Coin: domain.Coin{Name: "Ethereum", Abbrv: "ETH"},
			Days: []DayCount{{Day: "2022-01-02", Posts: 7}, {Day: "2022-01-03", Posts: 0}},
		},
	}

	require.NoError(t, Write(path, summaries))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(data)
	assert.Contains(t, html, "Tweets per day")
	assert.Contains(t, html, "Coin share")
	assert.Contains(t, html, "2022-01-02")
}

func TestWriteSingleCoinSkipsPie(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	summaries := []CoinSummary{{
		Coin: domain.Coin{Name: "Bitcoin", Abbrv: "BTC"},
		Days: []DayCount{{Day: "2022-01-02", Posts: 3}},
	}}

	require.NoError(t, Write(path, summaries))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Coin share")
}

func TestWriteNothingExported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	require.NoError(t, Write(path, nil))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
