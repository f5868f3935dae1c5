package quoter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alejandrodnm/polyquoter/internal/domain"
)

// fakes_test.go — colaboradores en memoria para los tests del quoter.

type createdOrder struct {
	tokenID string
	side    domain.Side
	price   float64
	size    float64
}

type fakeExchange struct {
	mu        sync.Mutex
	books     map[string]domain.OrderBook
	ticks     map[string]float64
	orders    map[string][]domain.OpenOrder // marketID → órdenes abiertas
	positions map[string]domain.Position
	holdings  []domain.Holding
	cash      float64

	failOpenOrders map[string]error

	cancelled []string
	created   []createdOrder
	nextID    int
}

func newFakeExchange() *fakeExchange {
	return &fakeExchange{
		books:          make(map[string]domain.OrderBook),
		ticks:          make(map[string]float64),
		orders:         make(map[string][]domain.OpenOrder),
		positions:      make(map[string]domain.Position),
		failOpenOrders: make(map[string]error),
	}
}

func (f *fakeExchange) GetOrderBook(_ context.Context, tokenID string) (domain.OrderBook, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.books[tokenID], nil
}

func (f *fakeExchange) GetTickSize(_ context.Context, tokenID string) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.ticks[tokenID]; ok {
		return t, nil
	}
	return 0.01, nil
}

func (f *fakeExchange) GetOpenOrders(_ context.Context, marketID string) ([]domain.OpenOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failOpenOrders[marketID]; err != nil {
		return nil, err
	}
	return f.orders[marketID], nil
}

func (f *fakeExchange) CancelOrder(_ context.Context, orderID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = append(f.cancelled, orderID)
	for market, orders := range f.orders {
		kept := orders[:0]
		for _, o := range orders {
			if o.ID != orderID {
				kept = append(kept, o)
			}
		}
		f.orders[market] = kept
	}
	return nil
}

func (f *fakeExchange) CreateOrder(_ context.Context, tokenID string, side domain.Side, price, size float64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.created = append(f.created, createdOrder{tokenID: tokenID, side: side, price: price, size: size})
	return fmt.Sprintf("ord-%d", f.nextID), nil
}

func (f *fakeExchange) GetPosition(_ context.Context, marketID string) (domain.Position, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.positions[marketID], nil
}

func (f *fakeExchange) GetHoldings(_ context.Context) ([]domain.Holding, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.holdings, nil
}

func (f *fakeExchange) GetFreeCash(_ context.Context) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cash, nil
}

func (f *fakeExchange) createdBySide(side domain.Side) []createdOrder {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []createdOrder
	for _, c := range f.created {
		if c.side == side {
			out = append(out, c)
		}
	}
	return out
}

type fakeMeta struct {
	metas map[string]domain.MarketMeta
}

func (f *fakeMeta) FetchMarketMeta(_ context.Context, _ []string) (map[string]domain.MarketMeta, error) {
	if f.metas == nil {
		return map[string]domain.MarketMeta{}, nil
	}
	return f.metas, nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	rounds []domain.RoundResult
	fills  []domain.FillEvent
	alerts []string
}

func (f *fakeNotifier) NotifyRound(_ context.Context, round domain.RoundResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rounds = append(f.rounds, round)
	return nil
}

func (f *fakeNotifier) NotifyFill(_ context.Context, fill domain.FillEvent, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fills = append(f.fills, fill)
	return nil
}

func (f *fakeNotifier) NotifyAlert(_ context.Context, title, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, title)
	return nil
}

type fakeStorage struct {
	mu     sync.Mutex
	rounds []domain.RoundResult
	fills  []domain.FillEvent
}

func (f *fakeStorage) SaveRound(_ context.Context, round domain.RoundResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rounds = append(f.rounds, round)
	return nil
}

func (f *fakeStorage) SaveFill(_ context.Context, fill domain.FillEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fills = append(f.fills, fill)
	return nil
}

func (f *fakeStorage) GetFills(_ context.Context, _, _ time.Time) ([]domain.FillEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fills, nil
}

func (f *fakeStorage) Close() error { return nil }
