package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/alejandrodnm/polyquoter/internal/domain"
)

// marketsFile es el documento YAML con la lista de mercados a operar.
type marketsFile struct {
	Markets []marketEntry `yaml:"markets"`
}

// marketEntry es un mercado en el archivo. Se mapea a domain.MarketConfig.
type marketEntry struct {
	Name             string  `yaml:"name"`
	MarketID         string  `yaml:"market_id"`
	YesTokenID       string  `yaml:"yes_token_id"`
	NoTokenID        string  `yaml:"no_token_id"`
	TradeSide        string  `yaml:"trade_side"` // "yes" | "no"
	Enabled          bool    `yaml:"enabled"`
	MaxPositionValue float64 `yaml:"max_position_value"`
}

// LoadMarkets lee el archivo de mercados. Se llama al inicio de CADA ronda:
// editar el archivo surte efecto en la ronda siguiente sin reiniciar.
// Devuelve solo los mercados habilitados y válidos.
func LoadMarkets(path string) ([]domain.MarketConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.LoadMarkets: read %q: %w", path, err)
	}

	var f marketsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config.LoadMarkets: parse YAML: %w", err)
	}

	markets := make([]domain.MarketConfig, 0, len(f.Markets))
	for _, e := range f.Markets {
		if !e.Enabled {
			continue
		}
		m := domain.MarketConfig{
			Name:             e.Name,
			MarketID:         e.MarketID,
			YesTokenID:       e.YesTokenID,
			NoTokenID:        e.NoTokenID,
			TradeSide:        domain.TradeSide(e.TradeSide),
			Enabled:          e.Enabled,
			MaxPositionValue: e.MaxPositionValue,
		}
		if m.TradeSide != domain.TradeYes && m.TradeSide != domain.TradeNo {
			return nil, fmt.Errorf("config.LoadMarkets: market %q: invalid trade_side %q", e.Name, e.TradeSide)
		}
		if !m.Valid() {
			return nil, fmt.Errorf("config.LoadMarkets: market %q: missing market_id, token id or max_position_value", e.Name)
		}
		markets = append(markets, m)
	}

	return markets, nil
}
