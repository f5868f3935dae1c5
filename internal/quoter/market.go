package quoter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alejandrodnm/polyquoter/internal/domain"
)

// processMarket ejecuta la pasada completa de quoting de un mercado:
// lecturas frescas, ladders sin liquidez propia, quote objetivo y
// reconciliación de ambos lados. Devuelve el stat de la ronda; un fallo se
// reporta en stat.Err sin afectar a los demás mercados.
func (q *Quoter) processMarket(ctx context.Context, m domain.MarketConfig, meta domain.MarketMeta) domain.MarketStat {
	stat := domain.MarketStat{
		MarketID:    m.MarketID,
		Name:        marketName(m, meta),
		Side:        m.TradeSide,
		MaxPosition: m.MaxPositionValue,
	}
	log := q.log.With("market", stat.Name)
	tokenID := m.TokenID()

	orders, err := q.exchange.GetOpenOrders(ctx, m.MarketID)
	if err != nil {
		stat.Err = fmt.Errorf("open orders: %w", err)
		return stat
	}
	buys := domain.FilterSide(orders, domain.Buy)
	sells := domain.FilterSide(orders, domain.Sell)

	tick, err := q.exchange.GetTickSize(ctx, tokenID)
	if err != nil {
		stat.Err = fmt.Errorf("tick size: %w", err)
		return stat
	}
	stat.TickSize = tick

	// Book fallido o vacío no aborta: ladders vacíos producen un quote
	// con nocional cero y la reconciliación retira lo que esté colgado.
	book, err := q.exchange.GetOrderBook(ctx, tokenID)
	if err != nil {
		log.Warn("book fetch failed, quoting against empty book", "err", err)
		book = domain.OrderBook{TokenID: tokenID}
	}

	bids := domain.BuildLadder(book.Bids, domain.SizesByPrice(buys, tick), tick, true)
	asks := domain.BuildLadder(book.Asks, domain.SizesByPrice(sells, tick), tick, false)
	stat.BestBid = bids.BestPrice()
	stat.BestAsk = asks.BestPrice()

	pos, posErr := q.exchange.GetPosition(ctx, m.MarketID)
	cash, cashErr := q.exchange.GetFreeCash(ctx)
	if posErr != nil || cashErr != nil {
		// Sin lecturas de cuenta confiables no se muta nada: las órdenes
		// descansando se quedan como están hasta la próxima ronda.
		log.Warn("account reads failed, skipping reconciliation",
			"position_err", posErr, "cash_err", cashErr)
		stat.PositionValue = pos.CurrentValue
		stat.BuyOrders = len(buys)
		stat.SellOrders = len(sells)
		computeAnalytics(&stat, asks, m.MaxPositionValue, meta)
		return stat
	}
	stat.PositionValue = pos.CurrentValue

	if fill, ok := q.fills.Observe(m.MarketID, stat.Name, pos, time.Now()); ok {
		q.handleFill(ctx, log, fill)
	}

	quote := domain.ComputeQuote(domain.QuoteInputs{
		Bids:             bids,
		Asks:             asks,
		Position:         pos,
		FreeCash:         cash,
		MaxPositionValue: m.MaxPositionValue,
		TickSize:         tick,
	})
	stat.BuyPrice = domain.NormalizePrice(quote.BuyPrice, tick)
	stat.SellPrice = domain.NormalizePrice(quote.SellPrice, tick)

	buyCount, err := q.reconcileSide(ctx, log, tokenID, domain.Buy, buys, quote.BuyPrice, quote.BuyValue, tick)
	stat.BuyOrders = buyCount
	if err != nil {
		stat.Err = err
		return stat
	}

	sellCount, err := q.reconcileSide(ctx, log, tokenID, domain.Sell, sells, quote.SellPrice, quote.SellValue, tick)
	stat.SellOrders = sellCount
	if err != nil {
		stat.Err = err
		return stat
	}

	computeAnalytics(&stat, asks, m.MaxPositionValue, meta)
	return stat
}

// handleFill notifica y persiste un fill. Ninguno de los dos fallos
// interrumpe la ronda: el fill ya ocurrió, solo se pierde el aviso.
func (q *Quoter) handleFill(ctx context.Context, log *slog.Logger, fill domain.FillEvent) {
	log.Info("fill detected", "delta", fill.Delta, "size", fill.NewSize, "value", fill.NewValue)

	if err := q.notifier.NotifyFill(ctx, fill, q.portfolioSummary(ctx)); err != nil {
		log.Warn("fill notification failed", "err", err)
	}
	if err := q.storage.SaveFill(ctx, fill); err != nil {
		log.Warn("fill not persisted", "err", err)
	}
}

// portfolioSummary arma el resumen de cartera que acompaña cada fill.
// Devuelve "" si la cuenta no se puede leer; el fill se notifica igual.
func (q *Quoter) portfolioSummary(ctx context.Context) string {
	holdings, err := q.exchange.GetHoldings(ctx)
	if err != nil {
		return ""
	}
	cash, err := q.exchange.GetFreeCash(ctx)
	if err != nil {
		cash = 0
	}

	var sb strings.Builder
	total := cash
	for _, h := range holdings {
		fmt.Fprintf(&sb, "  %-30s %8.2f  $%.2f\n", h.Market, h.Size, h.Value)
		total += h.Value
	}
	fmt.Fprintf(&sb, "  cash $%.2f | total $%.2f", cash, total)
	return sb.String()
}

// marketName resuelve el nombre para logs y reportes: config, luego la
// pregunta de Gamma, luego el condition id recortado.
func marketName(m domain.MarketConfig, meta domain.MarketMeta) string {
	if m.Name != "" {
		return m.Name
	}
	if meta.Question != "" {
		return meta.Question
	}
	if len(m.MarketID) > 14 {
		return m.MarketID[:12] + "..."
	}
	return m.MarketID
}
