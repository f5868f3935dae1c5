package domain

import "math"

// quote.go — sizing del quote y gobernador de riesgo.
//
// La estrategia cotiza por nocional, no por profundidad en contratos: el
// precio objetivo de cada lado es el nivel al que habría que "atravesar"
// el presupuesto disponible en dólares. Eso deja el sizing y el spread
// expresados directamente en la misma moneda que el límite de riesgo.

const (
	// MinProfit es el edge mínimo aceptable entre compra y mejor ask.
	MinProfit = 0.007
	// MinOrderValue es el nocional mínimo de una orden nueva en USDC.
	MinOrderValue = 5.0
	// MaxBuyOrderValue es el tope por orden de compra; los faltantes
	// mayores se parten en varias órdenes.
	MaxBuyOrderValue = 10.0
	// MaxSellPrice acota el precio de venta a una probabilidad válida.
	MaxSellPrice = 0.999
)

// TargetQuote es el quote objetivo de un mercado para una ronda: por lado,
// el precio y el nocional que queremos descansando en el book.
type TargetQuote struct {
	BuyPrice  float64
	BuyValue  float64
	SellPrice float64
	SellValue float64
}

// BuySize devuelve el tamaño implícito en contratos del lado comprador.
func (q TargetQuote) BuySize() float64 {
	if q.BuyPrice <= 0 {
		return 0
	}
	return q.BuyValue / q.BuyPrice
}

// SellSize devuelve el tamaño implícito en contratos del lado vendedor.
func (q TargetQuote) SellSize() float64 {
	if q.SellPrice <= 0 {
		return 0
	}
	return q.SellValue / q.SellPrice
}

// QuoteInputs reúne las lecturas frescas de la ronda para un mercado.
type QuoteInputs struct {
	Bids             Ladder
	Asks             Ladder
	Position         Position
	FreeCash         float64 // USDC disponible en la cuenta
	MaxPositionValue float64
	TickSize         float64
}

// ComputeQuote decide el quote objetivo de ambos lados.
//
// Compra: el presupuesto es min(maxPosition − costBasis, freeCash), nunca
// negativo. El precio objetivo es el nivel del bid ladder que acumula ese
// nocional. Solo se autoriza la compra si el edge visible contra el mejor
// ask alcanza MinProfit; si falta liquidez en cualquiera de los dos lados,
// el valor objetivo es 0 y el precio cae al mejor bid.
//
// Venta: solo con posición abierta. El precio debe superar tanto el piso de
// ganancia sobre el precio medio de entrada como el precio que implica
// barrer la posición completa contra el ask ladder — se toma el mayor de
// los dos, acotado a MaxSellPrice.
func ComputeQuote(in QuoteInputs) TargetQuote {
	bestBid := in.Bids.BestPrice()
	bestAsk := in.Asks.BestPrice()

	costBasis := in.Position.CostBasis()
	available := math.Min(in.MaxPositionValue-costBasis, in.FreeCash)
	if available < 0 {
		available = 0
	}

	var q TargetQuote

	if !in.Bids.Empty() && !in.Asks.Empty() {
		q.BuyPrice = in.Bids.PriceForValue(available)
		if bestAsk-q.BuyPrice >= MinProfit {
			q.BuyValue = available
		}
	} else {
		q.BuyPrice = bestBid
	}

	if in.Position.Size > 0 {
		floor := NormalizePrice(math.Min(in.Position.AvgPrice+MinProfit, MaxSellPrice), in.TickSize)
		sellPrice := floor
		if !in.Asks.Empty() {
			sweep := in.Asks.PriceForValue(in.Position.Size * bestAsk)
			sellPrice = math.Max(sweep, floor)
		}
		q.SellPrice = math.Min(sellPrice, MaxSellPrice)
		q.SellValue = in.Position.Size * q.SellPrice
	} else {
		q.SellPrice = bestAsk
	}

	return q
}
