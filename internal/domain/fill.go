package domain

import "time"

// FillEvent es un cambio neto de posición detectado entre dos rondas.
type FillEvent struct {
	MarketID   string
	MarketName string
	Delta      float64 // contratos, con signo: + compra, − venta
	NewSize    float64
	NewValue   float64 // valor de mercado de la posición tras el fill
	At         time.Time
}

// IsBuy devuelve true si el delta corresponde a una compra ejecutada.
func (f FillEvent) IsBuy() bool {
	return f.Delta > 0
}
