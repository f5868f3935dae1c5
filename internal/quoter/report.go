package quoter

import (
	"github.com/alejandrodnm/polyquoter/internal/domain"
)

// report.go — analítica de rotación y rendimiento por mercado.
//
// Estimación, no medición: cuánto del volumen diario del mercado tocaría
// nuestra cola si la liquidez se reparte proporcionalmente. Solo alimenta
// el reporte; la decisión de quoting no la mira.

// computeAnalytics completa los campos de analítica del stat a partir de la
// metadata de Gamma y la liquidez visible del lado vendedor.
func computeAnalytics(stat *domain.MarketStat, asks domain.Ladder, maxPosition float64, meta domain.MarketMeta) {
	stat.Volume24h = meta.Volume24h

	daily := meta.WeightedDailyVolume()
	if daily <= 0 || stat.SellPrice <= 0 {
		return
	}

	// Liquidez ajena delante de nuestro precio de venta: cuanto más cola,
	// menos volumen nos toca.
	queue := asks.ValueToPrice(stat.SellPrice)
	depth := queue + maxPosition
	if depth <= 0 {
		return
	}

	stat.TurnoverRatio = daily / depth * stat.SellPrice

	if spread := stat.Spread(); spread > 0 {
		stat.YieldRate = spread * stat.TurnoverRatio
	}
}
