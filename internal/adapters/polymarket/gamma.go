package polymarket

// gamma.go — metadata de reporte desde la Gamma API.
//
// La analítica de turnover/yield del reporte usa volúmenes de Gamma. Es
// opcional por diseño: si Gamma falla, la ronda sigue sin analítica.

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/alejandrodnm/polyquoter/internal/domain"
)

const (
	gammaMarketsPath  = "/markets"
	gammaConditionMax = 20
)

// FetchMarketMeta obtiene la metadata de Gamma para los condition ids dados.
// Los mercados sin datos en Gamma simplemente no aparecen en el mapa.
func (c *Client) FetchMarketMeta(ctx context.Context, conditionIDs []string) (map[string]domain.MarketMeta, error) {
	result := make(map[string]domain.MarketMeta, len(conditionIDs))

	for i := 0; i < len(conditionIDs); i += gammaConditionMax {
		end := i + gammaConditionMax
		if end > len(conditionIDs) {
			end = len(conditionIDs)
		}
		batch := conditionIDs[i:end]

		u := fmt.Sprintf("%s%s?condition_ids=%s&limit=%d",
			c.gammaBase,
			gammaMarketsPath,
			url.QueryEscape(strings.Join(batch, ",")),
			gammaConditionMax,
		)

		var resp gammaMarketsResponse
		if err := c.get(ctx, c.gammaLimiter, u, &resp); err != nil {
			slog.Debug("gamma batch failed, skipping",
				"batch", fmt.Sprintf("%d-%d", i, end),
				"err", err,
			)
			continue
		}

		for _, gm := range resp {
			result[gm.ConditionID] = mapMarketMeta(gm)
		}
	}

	return result, nil
}
