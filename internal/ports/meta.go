package ports

import (
	"context"

	"github.com/alejandrodnm/polyquoter/internal/domain"
)

// MetaProvider obtiene metadata de reporte de los mercados (Gamma).
type MetaProvider interface {
	// FetchMarketMeta devuelve la metadata por condition id. Los mercados
	// sin datos no aparecen en el mapa; no es un error.
	FetchMarketMeta(ctx context.Context, conditionIDs []string) (map[string]domain.MarketMeta, error)
}
