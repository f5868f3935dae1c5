package domain

import "time"

// MarketStat es el resultado observable de procesar un mercado en una ronda.
type MarketStat struct {
	MarketID      string
	Name          string
	Side          TradeSide
	BestBid       float64
	BestAsk       float64
	BuyPrice      float64
	SellPrice     float64
	TickSize      float64
	PositionValue float64
	MaxPosition   float64
	BuyOrders     int
	SellOrders    int

	// Analítica de reporte (no participa en la decisión de trading).
	Volume24h     float64
	TurnoverRatio float64
	YieldRate     float64

	Err error // marcador de error: el mercado falló esta ronda
}

// Spread devuelve el edge objetivo entre venta y compra.
func (s MarketStat) Spread() float64 {
	return s.SellPrice - s.BuyPrice
}

// PositionRatio devuelve la fracción usada del tope de posición.
func (s MarketStat) PositionRatio() float64 {
	if s.MaxPosition <= 0 {
		return 0
	}
	return s.PositionValue / s.MaxPosition
}

// MarketMeta es la metadata de reporte de un mercado (volúmenes, nombre).
// Solo alimenta la analítica y el reporte, nunca la decisión de trading.
type MarketMeta struct {
	Question  string
	Slug      string
	Volume24h float64
	Volume1wk float64
	Liquidity float64
	Active    bool
	Closed    bool
}

// WeightedDailyVolume pondera el volumen diario reciente: el promedio de
// los 6 días previos pesa 0.7 y las últimas 24h pesan 0.3.
func (m MarketMeta) WeightedDailyVolume() float64 {
	volume6d := m.Volume1wk - m.Volume24h
	if volume6d < 0 {
		volume6d = 0
	}
	return (volume6d/6)*0.7 + m.Volume24h*0.3
}

// RoundResult es el resumen de una ronda completa sobre todos los mercados.
type RoundResult struct {
	At      time.Time
	Stats   []MarketStat
	Errors  int
	Elapsed time.Duration
}
