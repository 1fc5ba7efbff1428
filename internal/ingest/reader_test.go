package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinwatch/tweet-scraper/internal/domain"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "coins.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCoins(t *testing.T) {
	path := writeCSV(t, "name,abbrv\nBitcoin,BTC\nEthereum,ETH\n")

	coins, err := LoadCoins(path)
	require.NoError(t, err)
	assert.Equal(t, []domain.Coin{
		{Name: "Bitcoin", Abbrv: "BTC"},
		{Name: "Ethereum", Abbrv: "ETH"},
	}, coins)
}

func TestLoadCoinsSkipsInvalidRows(t *testing.T) {
	path := writeCSV(t, "name,abbrv\nBitcoin Cash,BCH\nDogecoin,DOGE\nshort\n")

	coins, err := LoadCoins(path)
	require.NoError(t, err)
	assert.Equal(t, []domain.Coin{{Name: "Dogecoin", Abbrv: "DOGE"}}, coins)
}

func TestLoadCoinsStripsBOM(t *testing.T) {
	path := writeCSV(t, "\uFEFFname,abbrv\nBitcoin,BTC\n")

	coins, err := LoadCoins(path)
	require.NoError(t, err)
	assert.Equal(t, []domain.Coin{{Name: "Bitcoin", Abbrv: "BTC"}}, coins)
}

func TestLoadCoinsEmpty(t *testing.T) {
	path := writeCSV(t, "name,abbrv\n")
	_, err := LoadCoins(path)
	assert.Error(t, err)

	_, err = LoadCoins(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
