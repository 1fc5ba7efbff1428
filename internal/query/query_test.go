package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateRangeInclusive(t *testing.T) {
	days, err := DateRange("2022-01-01", "2022-01-03")
	require.NoError(t, err)
	assert.Equal(t, []string{"2022-01-01", "2022-01-02", "2022-01-03"}, days)
}

func TestDateRangeProperties(t *testing.T) {
	tests := []struct {
		start, end string
		length     int
	}{
		{"2022-01-01", "2022-01-01", 1},
		{"2021-12-31", "2022-01-01", 2},
		{"2022-02-27", "2022-03-02", 4}, // month boundary
		{"2020-02-28", "2020-03-01", 3}, // leap day
		{"2022-01-01", "2022-01-31", 31},
	}
	for _, tt := range tests {
		days, err := DateRange(tt.start, tt.end)
		require.NoError(t, err, "%s..%s", tt.start, tt.end)
		require.Len(t, days, tt.length)
		assert.Equal(t, tt.start, days[0])
		assert.Equal(t, tt.end, days[len(days)-1])
		for i := 1; i < len(days); i++ {
			assert.Less(t, days[i-1], days[i], "days must be strictly increasing")
		}
	}
}

func TestDateRangeInvalid(t *testing.T) {
	for _, tt := range []struct{ start, end string }{
		{"01-01-2022", "2022-01-03"}, // wrong format
		{"2022-01-01", "not-a-date"},
		{"2022-01-03", "2022-01-01"}, // reversed
		{"", "2022-01-01"},
	} {
		_, err := DateRange(tt.start, tt.end)
		assert.ErrorIs(t, err, ErrInvalidRange, "%q..%q", tt.start, tt.end)
	}
}

func TestSearchURLFields(t *testing.T) {
	s := Search{
		CoinName:  "Bitcoin",
		CoinAbbrv: "BTC",
		Language:  "en",
		Page:      "top",
	}
	u := s.URL("2022-01-01", "2022-01-02")

	for _, want := range []string{
		"(Bitcoin%20OR%20BTC)",
		"min_replies%3A0",
		"min_faves%3A0",
		"min_retweets%3A0",
		"lang%3Aen",
		"until%3A2022-01-02",
		"since%3A2022-01-01",
		"f=top",
	} {
		assert.Contains(t, u, want)
	}
}

func TestSearchURLDeterministic(t *testing.T) {
	s := Search{CoinName: "Ethereum", CoinAbbrv: "ETH", MinFaves: 10, Language: "en", Page: "Latest"}
	assert.Equal(t, s.URL("2022-03-01", "2022-03-02"), s.URL("2022-03-01", "2022-03-02"))
	assert.Contains(t, s.URL("2022-03-01", "2022-03-02"), "f=latest", "page mode is lowercased")
}

func TestSearchURLThresholdIsolation(t *testing.T) {
	base := Search{CoinName: "Bitcoin", CoinAbbrv: "BTC", Language: "en", Page: "top"}
	u0 := base.URL("2022-01-01", "2022-01-02")

	faves := base
	faves.MinFaves = 7
	assert.Equal(t,
		strings.Replace(u0, "min_faves%3A0", "min_faves%3A7", 1),
		faves.URL("2022-01-01", "2022-01-02"),
		"changing one threshold must change exactly that query term")

	replies := base
	replies.MinReplies = 3
	assert.Equal(t,
		strings.Replace(u0, "min_replies%3A0", "min_replies%3A3", 1),
		replies.URL("2022-01-01", "2022-01-02"))

	retweets := base
	retweets.MinRetweets = 9
	assert.Equal(t,
		strings.Replace(u0, "min_retweets%3A0", "min_retweets%3A9", 1),
		retweets.URL("2022-01-01", "2022-01-02"))
}
