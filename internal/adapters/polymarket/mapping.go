package polymarket

import (
	"strings"
	"time"

	"github.com/alejandrodnm/polyquoter/internal/domain"
)

// mapping.go — conversión de DTOs raw a domain entities.
//
// Las entradas malformadas (precios/tamaños no parseables o no positivos)
// se descartan acá, en el borde de ingestión: el core nunca ve shapes
// ambiguos.

// mapOrderBook convierte un bookResponse a domain.OrderBook.
func mapOrderBook(tokenID string, r bookResponse) domain.OrderBook {
	return domain.OrderBook{
		TokenID: tokenID,
		Bids:    mapBookEntries(r.Bids),
		Asks:    mapBookEntries(r.Asks),
	}
}

// mapBookEntries convierte niveles raw, descartando los malformados.
func mapBookEntries(raw []bookEntryRaw) []domain.BookEntry {
	entries := make([]domain.BookEntry, 0, len(raw))
	for _, e := range raw {
		price := domain.ParsePrice(e.Price)
		size := domain.ParsePrice(e.Size)
		if price <= 0 || size <= 0 {
			continue
		}
		entries = append(entries, domain.BookEntry{Price: price, Size: size})
	}
	return entries
}

// mapOpenOrders convierte órdenes del CLOB, descartando las malformadas.
func mapOpenOrders(raw []clobOpenOrder) []domain.OpenOrder {
	orders := make([]domain.OpenOrder, 0, len(raw))
	for _, o := range raw {
		mapped, ok := mapOpenOrder(o)
		if !ok {
			continue
		}
		orders = append(orders, mapped)
	}
	return orders
}

// mapOpenOrder valida y convierte una orden abierta.
func mapOpenOrder(o clobOpenOrder) (domain.OpenOrder, bool) {
	price := domain.ParsePrice(o.Price)
	original := domain.ParsePrice(o.OriginalSize)
	if o.ID == "" || price <= 0 || original <= 0 {
		return domain.OpenOrder{}, false
	}

	side := domain.Buy
	if strings.EqualFold(o.Side, string(domain.Sell)) {
		side = domain.Sell
	}

	return domain.OpenOrder{
		ID:           o.ID,
		Side:         side,
		Price:        price,
		OriginalSize: original,
		MatchedSize:  domain.ParsePrice(o.SizeMatched),
		CreatedAt:    parseTimestamp(o.CreatedAt),
	}, true
}

// mapPosition convierte una posición del data-api.
func mapPosition(p dataPosition) domain.Position {
	size, _ := p.Size.Float64()
	avg, _ := p.AvgPrice.Float64()
	value, _ := p.CurrentValue.Float64()
	if size < 0 {
		size = 0
	}
	return domain.Position{Size: size, AvgPrice: avg, CurrentValue: value}
}

// mapHoldings convierte las posiciones de la cuenta, filtrando polvo.
func mapHoldings(raw []dataPosition) []domain.Holding {
	holdings := make([]domain.Holding, 0, len(raw))
	for _, p := range raw {
		size, _ := p.Size.Float64()
		if size <= 0.01 {
			continue
		}
		value, _ := p.CurrentValue.Float64()

		name := p.Title
		if name == "" {
			name = p.Market
		}
		if name == "" {
			name = p.AssetID
		}
		if len(name) > 30 {
			name = name[:30]
		}

		holdings = append(holdings, domain.Holding{Market: name, Size: size, Value: value})
	}
	return holdings
}

// mapMarketMeta convierte la metadata de Gamma.
func mapMarketMeta(gm gammaMarket) domain.MarketMeta {
	m := domain.MarketMeta{
		Question: gm.Question,
		Slug:     gm.Slug,
		Active:   gm.Active,
		Closed:   gm.Closed,
	}
	if v, err := gm.Volume24h.Float64(); err == nil {
		m.Volume24h = v
	}
	if v, err := gm.Volume1wk.Float64(); err == nil {
		m.Volume1wk = v
	}
	if v, err := gm.Liquidity.Float64(); err == nil {
		m.Liquidity = v
	}
	return m
}

// parseTimestamp parsea los formatos de fecha que devuelve el CLOB.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	// Unix epoch en segundos
	if ts := domain.ParsePrice(s); ts > 0 {
		return time.Unix(int64(ts), 0).UTC()
	}
	return time.Time{}
}
