package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bidLadder(levels ...Level) Ladder {
	return Ladder{Levels: levels, IsBid: true}
}

func askLadder(levels ...Level) Ladder {
	return Ladder{Levels: levels, IsBid: false}
}

func TestBuildLadder_ExcludesOwnSize(t *testing.T) {
	// book bids (0.50, 100), (0.49, 200) con orden propia de 40 en 0.50
	// → el nivel 0.50 debe mostrar 60 de liquidez ajena
	book := []BookEntry{{Price: 0.50, Size: 100}, {Price: 0.49, Size: 200}}
	own := SizesByPrice([]OpenOrder{
		{ID: "a", Side: Buy, Price: 0.50, OriginalSize: 40, MatchedSize: 0},
	}, 0.01)

	l := BuildLadder(book, own, 0.01, true)

	require.Len(t, l.Levels, 2)
	assert.InDelta(t, 0.50, l.Levels[0].Price, 1e-9)
	assert.InDelta(t, 60.0, l.Levels[0].Size, 1e-9)
	assert.InDelta(t, 200.0, l.Levels[1].Size, 1e-9)
}

func TestBuildLadder_DropsFullySelfOwnedLevel(t *testing.T) {
	// tamaño propio == tamaño del book → el nivel desaparece
	book := []BookEntry{{Price: 0.50, Size: 40}, {Price: 0.49, Size: 10}}
	own := SizesByPrice([]OpenOrder{
		{ID: "a", Side: Buy, Price: 0.50, OriginalSize: 50, MatchedSize: 10},
	}, 0.01)

	l := BuildLadder(book, own, 0.01, true)

	require.Len(t, l.Levels, 1)
	assert.InDelta(t, 0.49, l.Levels[0].Price, 1e-9)
	for _, lv := range l.Levels {
		assert.Greater(t, lv.Size, 0.0)
	}
}

func TestBuildLadder_AggregatesByNormalizedTick(t *testing.T) {
	// 0.501 y 0.499 con tick 0.01 caen ambos en 0.50
	book := []BookEntry{{Price: 0.501, Size: 30}, {Price: 0.499, Size: 20}}

	l := BuildLadder(book, nil, 0.01, true)

	require.Len(t, l.Levels, 1)
	assert.InDelta(t, 0.50, l.Levels[0].Price, 1e-9)
	assert.InDelta(t, 50.0, l.Levels[0].Size, 1e-9)
}

func TestBuildLadder_SortOrder(t *testing.T) {
	book := []BookEntry{{Price: 0.48, Size: 10}, {Price: 0.50, Size: 10}, {Price: 0.49, Size: 10}}

	bids := BuildLadder(book, nil, 0.01, true)
	asks := BuildLadder(book, nil, 0.01, false)

	assert.InDelta(t, 0.50, bids.Levels[0].Price, 1e-9)
	assert.InDelta(t, 0.48, bids.Levels[2].Price, 1e-9)
	assert.InDelta(t, 0.48, asks.Levels[0].Price, 1e-9)
	assert.InDelta(t, 0.50, asks.Levels[2].Price, 1e-9)
}

func TestBuildLadder_DropsMalformedEntries(t *testing.T) {
	book := []BookEntry{{Price: 0, Size: 10}, {Price: 0.50, Size: -5}, {Price: 0.49, Size: 10}}

	l := BuildLadder(book, nil, 0.01, true)

	require.Len(t, l.Levels, 1)
	assert.InDelta(t, 0.49, l.Levels[0].Price, 1e-9)
}

func TestBuildLadder_EmptyBookSide(t *testing.T) {
	l := BuildLadder(nil, nil, 0.01, true)
	assert.True(t, l.Empty())
	assert.Equal(t, 0.0, l.BestPrice())
}

func TestBestPrice_DegenerateBounds(t *testing.T) {
	assert.Equal(t, 0.0, bidLadder().BestPrice(), "bid vacío = no hay comprador")
	assert.Equal(t, 1.0, askLadder().BestPrice(), "ask vacío = no hay vendedor")
}

func TestPriceForValue_CumulativeCrossing(t *testing.T) {
	// target 40: 0.50×60=30 < 40, sigue; 30+0.49×200=128 >= 40 → 0.49
	l := bidLadder(Level{0.50, 60}, Level{0.49, 200})
	assert.InDelta(t, 0.49, l.PriceForValue(40), 1e-9)
}

func TestPriceForValue_NonPositiveTarget(t *testing.T) {
	l := bidLadder(Level{0.50, 60}, Level{0.49, 200})
	assert.InDelta(t, 0.50, l.PriceForValue(0), 1e-9)
	assert.InDelta(t, 0.50, l.PriceForValue(-10), 1e-9)
}

func TestPriceForValue_SaturatesAtWorstLevel(t *testing.T) {
	l := bidLadder(Level{0.50, 10}, Level{0.49, 10})
	// acumulado total = 9.9, nunca llega a 1000 → devuelve el peor precio
	assert.InDelta(t, 0.49, l.PriceForValue(1000), 1e-9)
}

func TestPriceForValue_EmptyLadder(t *testing.T) {
	assert.Equal(t, 0.0, bidLadder().PriceForValue(50))
	assert.Equal(t, 1.0, askLadder().PriceForValue(50))
}

func TestValueToPrice_StopsInclusiveAtLimit(t *testing.T) {
	l := bidLadder(Level{0.50, 100}, Level{0.49, 100}, Level{0.48, 100})

	// límite 0.49: incluye 0.50 y 0.49, excluye 0.48
	got := l.ValueToPrice(0.49)
	assert.InDelta(t, 0.50*100+0.49*100, got, 1e-9)

	// límite por debajo de todo: barre el ladder completo
	assert.InDelta(t, 0.50*100+0.49*100+0.48*100, l.ValueToPrice(0.01), 1e-9)
}

func TestValueToPrice_AskDirection(t *testing.T) {
	l := askLadder(Level{0.51, 100}, Level{0.52, 100}, Level{0.53, 100})

	got := l.ValueToPrice(0.52)
	assert.InDelta(t, 0.51*100+0.52*100, got, 1e-9)
}

func TestValueToPrice_MonotonicInLimit(t *testing.T) {
	l := bidLadder(Level{0.50, 50}, Level{0.49, 80}, Level{0.48, 120}, Level{0.47, 10})

	// mover el límite más lejos del mejor precio nunca reduce el acumulado
	prev := 0.0
	for _, limit := range []float64{0.50, 0.49, 0.48, 0.47, 0.01} {
		cur := l.ValueToPrice(limit)
		assert.GreaterOrEqual(t, cur, prev, "limit %v", limit)
		prev = cur
	}
}

func TestValueToPrice_EmptyLadder(t *testing.T) {
	assert.Equal(t, 0.0, bidLadder().ValueToPrice(0.5))
}

func TestNormalizePrice(t *testing.T) {
	assert.InDelta(t, 0.50, NormalizePrice(0.504, 0.01), 1e-9)
	assert.InDelta(t, 0.51, NormalizePrice(0.506, 0.01), 1e-9)
	assert.InDelta(t, 0.123, NormalizePrice(0.1234, 0.001), 1e-9)
	// tick inválido: el precio pasa sin tocar
	assert.Equal(t, 0.1234, NormalizePrice(0.1234, 0))
}
