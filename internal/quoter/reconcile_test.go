package quoter

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/polyquoter/internal/domain"
)

func newTestQuoter(fe *fakeExchange) *Quoter {
	return &Quoter{
		exchange: fe,
		fills:    newFillTracker(),
		log:      slog.Default(),
	}
}

func openOrder(id string, side domain.Side, price, size float64, age time.Duration) domain.OpenOrder {
	return domain.OpenOrder{
		ID:           id,
		Side:         side,
		Price:        price,
		OriginalSize: size,
		CreatedAt:    time.Now().Add(-age),
	}
}

func TestReconcileSide_AlreadyConverged(t *testing.T) {
	fe := newFakeExchange()
	q := newTestQuoter(fe)

	// 20 contratos a 0.49 = $9.80 descansando contra un objetivo de $10:
	// el faltante no llega al mínimo posteable, no se toca nada.
	orders := []domain.OpenOrder{openOrder("a", domain.Buy, 0.49, 20, time.Minute)}

	count, err := q.reconcileSide(context.Background(), q.log, "tok", domain.Buy, orders, 0.49, 10.0, 0.01)
	require.NoError(t, err)

	assert.Equal(t, 1, count)
	assert.Empty(t, fe.cancelled)
	assert.Empty(t, fe.created)
}

func TestReconcileSide_RepricesAndChunksBuys(t *testing.T) {
	fe := newFakeExchange()
	q := newTestQuoter(fe)

	orders := []domain.OpenOrder{openOrder("stale", domain.Buy, 0.48, 20, time.Minute)}

	count, err := q.reconcileSide(context.Background(), q.log, "tok", domain.Buy, orders, 0.49, 25.0, 0.01)
	require.NoError(t, err)

	assert.Equal(t, []string{"stale"}, fe.cancelled)

	// $25 en tramos de máximo $10: 10 + 10 + 5
	created := fe.createdBySide(domain.Buy)
	require.Len(t, created, 3)
	assert.Equal(t, 3, count)
	for _, c := range created {
		assert.Equal(t, 0.49, c.price)
	}
	assert.InDelta(t, 10.0/0.49, created[0].size, 1e-9)
	assert.InDelta(t, 10.0/0.49, created[1].size, 1e-9)
	assert.InDelta(t, 5.0/0.49, created[2].size, 1e-9)
}

func TestReconcileSide_TrimsNewestFirst(t *testing.T) {
	fe := newFakeExchange()
	q := newTestQuoter(fe)

	// $10 viejos + $15 nuevos contra un objetivo de $12: se recorta la
	// nueva; la vieja conserva su lugar en la cola.
	orders := []domain.OpenOrder{
		openOrder("old", domain.Buy, 0.50, 20, time.Hour),
		openOrder("new", domain.Buy, 0.50, 30, time.Minute),
	}

	count, err := q.reconcileSide(context.Background(), q.log, "tok", domain.Buy, orders, 0.50, 12.0, 0.01)
	require.NoError(t, err)

	assert.Equal(t, []string{"new"}, fe.cancelled)
	assert.Empty(t, fe.created) // faltan $2, por debajo del mínimo
	assert.Equal(t, 1, count)
}

func TestReconcileSide_ZeroTargetCancelsAll(t *testing.T) {
	fe := newFakeExchange()
	q := newTestQuoter(fe)

	orders := []domain.OpenOrder{
		openOrder("a", domain.Buy, 0.50, 20, time.Hour),
		openOrder("b", domain.Buy, 0.50, 10, time.Minute),
	}

	count, err := q.reconcileSide(context.Background(), q.log, "tok", domain.Buy, orders, 0.50, 0, 0.01)
	require.NoError(t, err)

	assert.Len(t, fe.cancelled, 2)
	assert.Empty(t, fe.created)
	assert.Equal(t, 0, count)
}

func TestReconcileSide_SellPostsSingleOrder(t *testing.T) {
	fe := newFakeExchange()
	q := newTestQuoter(fe)

	count, err := q.reconcileSide(context.Background(), q.log, "tok", domain.Sell, nil, 0.52, 26.0, 0.01)
	require.NoError(t, err)

	created := fe.createdBySide(domain.Sell)
	require.Len(t, created, 1)
	assert.Equal(t, 1, count)
	assert.Equal(t, 0.52, created[0].price)
	assert.InDelta(t, 50.0, created[0].size, 1e-9)
}

func TestReconcileSide_ShortageBelowMinimumIsNoop(t *testing.T) {
	fe := newFakeExchange()
	q := newTestQuoter(fe)

	count, err := q.reconcileSide(context.Background(), q.log, "tok", domain.Buy, nil, 0.49, 4.0, 0.01)
	require.NoError(t, err)

	assert.Equal(t, 0, count)
	assert.Empty(t, fe.created)
}

func TestReconcileSide_PartialFillCountsAsResting(t *testing.T) {
	fe := newFakeExchange()
	q := newTestQuoter(fe)

	// Orden de 30 con 10 matcheados: quedan 20 contratos ($10). El
	// objetivo de $12 deja un faltante de $2, por debajo del mínimo.
	o := openOrder("partial", domain.Buy, 0.50, 30, time.Minute)
	o.MatchedSize = 10

	count, err := q.reconcileSide(context.Background(), q.log, "tok", domain.Buy, []domain.OpenOrder{o}, 0.50, 12.0, 0.01)
	require.NoError(t, err)

	assert.Equal(t, 1, count)
	assert.Empty(t, fe.cancelled)
	assert.Empty(t, fe.created)
}
