package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func quoteInputs() QuoteInputs {
	return QuoteInputs{
		Bids:             bidLadder(Level{0.50, 60}, Level{0.49, 200}),
		Asks:             askLadder(Level{0.53, 80}, Level{0.54, 150}),
		Position:         Position{},
		FreeCash:         100,
		MaxPositionValue: 25,
		TickSize:         0.01,
	}
}

func TestComputeQuote_BuyAuthorizedWithEdge(t *testing.T) {
	in := quoteInputs()
	q := ComputeQuote(in)

	// disponible = min(25−0, 100) = 25; 0.50×60=30 >= 25 → precio 0.50
	assert.InDelta(t, 0.50, q.BuyPrice, 1e-9)
	// edge = 0.53 − 0.50 = 0.03 >= MinProfit → compra autorizada
	assert.InDelta(t, 25.0, q.BuyValue, 1e-9)
	assert.InDelta(t, 50.0, q.BuySize(), 1e-9)
}

func TestComputeQuote_BuyRefusedBelowMinProfit(t *testing.T) {
	in := quoteInputs()
	in.Asks = askLadder(Level{0.505, 80}) // edge 0.005 < 0.007

	q := ComputeQuote(in)

	assert.InDelta(t, 0.50, q.BuyPrice, 1e-9)
	assert.Equal(t, 0.0, q.BuyValue, "sin edge suficiente no se compra")
}

func TestComputeQuote_CostBasisLimitsBudget(t *testing.T) {
	in := quoteInputs()
	// costo de entrada 20 con tope 25 → solo quedan 5 de presupuesto,
	// aunque la posición valga menos a mercado
	in.Position = Position{Size: 40, AvgPrice: 0.50, CurrentValue: 10}

	q := ComputeQuote(in)

	assert.InDelta(t, 5.0, q.BuyValue, 1e-9)
}

func TestComputeQuote_FreeCashCapsBudget(t *testing.T) {
	in := quoteInputs()
	in.FreeCash = 7.5

	q := ComputeQuote(in)

	assert.InDelta(t, 7.5, q.BuyValue, 1e-9)
}

func TestComputeQuote_NegativeBudgetClampsToZero(t *testing.T) {
	in := quoteInputs()
	in.Position = Position{Size: 100, AvgPrice: 0.40} // costBasis 40 > max 25

	q := ComputeQuote(in)

	assert.Equal(t, 0.0, q.BuyValue)
}

func TestComputeQuote_EmptySideDisablesBuy(t *testing.T) {
	in := quoteInputs()
	in.Asks = askLadder()

	q := ComputeQuote(in)

	// sin asks no hay referencia de edge: precio = mejor bid, valor 0
	assert.InDelta(t, 0.50, q.BuyPrice, 1e-9)
	assert.Equal(t, 0.0, q.BuyValue)

	in = quoteInputs()
	in.Bids = bidLadder()
	q = ComputeQuote(in)
	assert.Equal(t, 0.0, q.BuyPrice, "sin bids el mejor bid degenerado es 0")
	assert.Equal(t, 0.0, q.BuyValue)
}

func TestComputeQuote_SellFloorOverAvgPrice(t *testing.T) {
	in := quoteInputs()
	in.Position = Position{Size: 10, AvgPrice: 0.60, CurrentValue: 5.3}
	// sweep del ask ladder: 10×0.53=5.3 → 0.53×80=42.4 >= 5.3 → 0.53
	// piso: 0.60+0.007=0.607 → normalizado 0.61 — gana el piso
	q := ComputeQuote(in)

	assert.InDelta(t, 0.61, q.SellPrice, 1e-9)
	assert.InDelta(t, 6.1, q.SellValue, 1e-9)
}

func TestComputeQuote_SellSweepWins(t *testing.T) {
	in := quoteInputs()
	in.Position = Position{Size: 1000, AvgPrice: 0.30}
	// sweep: 1000×0.53=530; 0.53×80=42.4 <530, 42.4+0.54×150=123.4 <530
	// → satura en 0.54, mayor que el piso 0.30+0.007
	q := ComputeQuote(in)

	assert.InDelta(t, 0.54, q.SellPrice, 1e-9)
	assert.InDelta(t, 540.0, q.SellValue, 1e-9)
}

func TestComputeQuote_SellCappedAtMaxPrice(t *testing.T) {
	in := quoteInputs()
	in.Position = Position{Size: 10, AvgPrice: 0.998}
	in.Asks = askLadder()

	q := ComputeQuote(in)

	assert.InDelta(t, MaxSellPrice, q.SellPrice, 0.001)
	assert.LessOrEqual(t, q.SellPrice, MaxSellPrice)
}

func TestComputeQuote_NoPositionNoSell(t *testing.T) {
	q := ComputeQuote(quoteInputs())

	assert.InDelta(t, 0.53, q.SellPrice, 1e-9) // informativo: mejor ask
	assert.Equal(t, 0.0, q.SellValue)
}

func TestOpenOrder_RemainingSize(t *testing.T) {
	o := OpenOrder{OriginalSize: 40, MatchedSize: 15}
	assert.InDelta(t, 25.0, o.RemainingSize(), 1e-9)

	over := OpenOrder{OriginalSize: 10, MatchedSize: 12}
	assert.Equal(t, 0.0, over.RemainingSize())
}

func TestSizesByPrice_AccumulatesNormalized(t *testing.T) {
	orders := []OpenOrder{
		{Price: 0.501, OriginalSize: 10},
		{Price: 0.499, OriginalSize: 20, MatchedSize: 5},
		{Price: 0.48, OriginalSize: 7},
	}

	sizes := SizesByPrice(orders, 0.01)

	assert.InDelta(t, 25.0, sizes[0.50], 1e-9)
	assert.InDelta(t, 7.0, sizes[0.48], 1e-9)
}
