package domain

import "time"

// Side es el lado de una orden en el CLOB.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// OpenOrder es una orden propia descansando en el book.
type OpenOrder struct {
	ID           string
	Side         Side
	Price        float64
	OriginalSize float64
	MatchedSize  float64
	CreatedAt    time.Time
}

// RemainingSize devuelve el tamaño sin ejecutar de la orden.
// Nunca es negativo aunque la API reporte matched > original.
func (o OpenOrder) RemainingSize() float64 {
	rem := o.OriginalSize - o.MatchedSize
	if rem < 0 {
		return 0
	}
	return rem
}

// RemainingValue devuelve el valor nocional sin ejecutar a un precio dado.
func (o OpenOrder) RemainingValue(price float64) float64 {
	return o.RemainingSize() * price
}

// FilterSide devuelve las órdenes de un lado.
func FilterSide(orders []OpenOrder, side Side) []OpenOrder {
	out := make([]OpenOrder, 0, len(orders))
	for _, o := range orders {
		if o.Side == side {
			out = append(out, o)
		}
	}
	return out
}

// SizesByPrice acumula el tamaño restante de las órdenes propias por precio
// normalizado al tick. Es el insumo de BuildLadder para descontar la
// liquidez propia del book.
func SizesByPrice(orders []OpenOrder, tick float64) map[float64]float64 {
	sizes := make(map[float64]float64, len(orders))
	for _, o := range orders {
		price := NormalizePrice(o.Price, tick)
		sizes[price] += o.RemainingSize()
	}
	return sizes
}
