package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/polyquoter/internal/domain"
)

func writeMarketsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "markets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMarkets_FiltersDisabled(t *testing.T) {
	path := writeMarketsFile(t, `
markets:
  - name: "Fed cuts in March"
    market_id: "0xaaa"
    yes_token_id: "111"
    no_token_id: "222"
    trade_side: "no"
    enabled: true
    max_position_value: 25
  - name: "Disabled market"
    market_id: "0xbbb"
    yes_token_id: "333"
    no_token_id: "444"
    trade_side: "yes"
    enabled: false
    max_position_value: 50
`)

	markets, err := LoadMarkets(path)
	require.NoError(t, err)

	require.Len(t, markets, 1)
	assert.Equal(t, "Fed cuts in March", markets[0].Name)
	assert.Equal(t, domain.TradeNo, markets[0].TradeSide)
	assert.Equal(t, "222", markets[0].TokenID(), "trade_side=no opera el token NO")
	assert.Equal(t, 25.0, markets[0].MaxPositionValue)
}

func TestLoadMarkets_RejectsInvalidTradeSide(t *testing.T) {
	path := writeMarketsFile(t, `
markets:
  - name: "Bad side"
    market_id: "0xaaa"
    yes_token_id: "111"
    no_token_id: "222"
    trade_side: "maybe"
    enabled: true
    max_position_value: 25
`)

	_, err := LoadMarkets(path)
	assert.ErrorContains(t, err, "invalid trade_side")
}

func TestLoadMarkets_RejectsMissingFields(t *testing.T) {
	path := writeMarketsFile(t, `
markets:
  - name: "No max position"
    market_id: "0xaaa"
    yes_token_id: "111"
    no_token_id: "222"
    trade_side: "yes"
    enabled: true
`)

	_, err := LoadMarkets(path)
	assert.Error(t, err)
}

func TestLoadMarkets_MissingFile(t *testing.T) {
	_, err := LoadMarkets(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("quoter: {}\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Quoter.IntervalSeconds)
	assert.Equal(t, 50, cfg.Quoter.FailureAlertThreshold)
	assert.Equal(t, "https://clob.polymarket.com", cfg.API.CLOBBase)
	assert.Equal(t, "https://data-api.polymarket.com", cfg.API.DataBase)
	assert.Equal(t, "info", cfg.Log.Level)
}
