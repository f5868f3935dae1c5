package quoter

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/alejandrodnm/polyquoter/internal/domain"
)

// reconcile.go — convergencia diff-based de las órdenes descansando.
//
// Nunca se cancela-y-repone todo: las órdenes que ya están al precio
// objetivo se conservan (mantienen prioridad de cola) y solo se corrige la
// diferencia. Repetir la reconciliación sin que cambie el mercado no hace
// ninguna llamada de mutación.

// sizeTolerance es el exceso de nocional tolerado antes de recortar.
const sizeTolerance = 0.01

// reconcileSide converge las órdenes de un lado hacia el precio y nocional
// objetivo. Devuelve cuántas órdenes quedan descansando tras la pasada.
// Cualquier error de cancelación o posteo aborta la pasada del mercado: el
// estado remoto es incierto y la próxima ronda re-lee y converge de nuevo.
func (q *Quoter) reconcileSide(ctx context.Context, log *slog.Logger, tokenID string, side domain.Side, orders []domain.OpenOrder, targetPrice, targetValue, tick float64) (int, error) {
	targetPrice = domain.NormalizePrice(targetPrice, tick)

	// 1. Cancelar todo lo que no está al precio objetivo.
	kept := make([]domain.OpenOrder, 0, len(orders))
	for _, o := range orders {
		if priceEqual(domain.NormalizePrice(o.Price, tick), targetPrice) {
			kept = append(kept, o)
			continue
		}
		if err := q.exchange.CancelOrder(ctx, o.ID); err != nil {
			return len(kept), fmt.Errorf("quoter.reconcileSide: cancel %s: %w", o.ID, err)
		}
		log.Debug("cancelled off-price order",
			"side", side, "order", o.ID, "price", o.Price, "target", targetPrice)
	}

	resting := 0.0
	for _, o := range kept {
		resting += o.RemainingSize() * targetPrice
	}

	// 2. Recortar exceso, las más nuevas primero: las viejas conservan
	// su lugar en la cola.
	sort.Slice(kept, func(i, j int) bool {
		return kept[i].CreatedAt.After(kept[j].CreatedAt)
	})

	count := len(kept)
	for _, o := range kept {
		if resting <= targetValue+sizeTolerance {
			break
		}
		if err := q.exchange.CancelOrder(ctx, o.ID); err != nil {
			return count, fmt.Errorf("quoter.reconcileSide: trim %s: %w", o.ID, err)
		}
		log.Debug("trimmed excess order", "side", side, "order", o.ID, "value", o.RemainingSize()*targetPrice)
		resting -= o.RemainingSize() * targetPrice
		count--
	}

	// 3. Completar el faltante si alcanza el mínimo posteable.
	if targetPrice <= 0 {
		return count, nil
	}
	shortage := targetValue - resting
	if shortage < domain.MinOrderValue {
		return count, nil
	}

	if side == domain.Buy {
		// Compras en tramos acotados: un fill parcial nunca compromete
		// más que MaxBuyOrderValue de una vez.
		for shortage >= domain.MinOrderValue {
			chunk := math.Min(shortage, domain.MaxBuyOrderValue)
			id, err := q.exchange.CreateOrder(ctx, tokenID, side, targetPrice, chunk/targetPrice)
			if err != nil {
				return count, fmt.Errorf("quoter.reconcileSide: create buy: %w", err)
			}
			log.Debug("posted buy order", "order", id, "price", targetPrice, "value", chunk)
			shortage -= chunk
			count++
		}
		return count, nil
	}

	// Venta: una sola orden por el total faltante.
	id, err := q.exchange.CreateOrder(ctx, tokenID, side, targetPrice, shortage/targetPrice)
	if err != nil {
		return count, fmt.Errorf("quoter.reconcileSide: create sell: %w", err)
	}
	log.Debug("posted sell order", "order", id, "price", targetPrice, "value", shortage)
	return count + 1, nil
}

// priceEqual compara precios ya normalizados al mismo tick.
func priceEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
