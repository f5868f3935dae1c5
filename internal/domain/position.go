package domain

// Position es la posición en el token operado de un mercado.
// Se lee fresca en cada ronda desde la cuenta; nunca se cachea.
type Position struct {
	Size         float64 // contratos
	AvgPrice     float64 // precio medio de entrada
	CurrentValue float64 // valor de mercado actual en USDC
}

// CostBasis devuelve el costo de entrada (size × avgPrice).
// Se usa para el presupuesto de riesgo en lugar del valor de mercado:
// las ganancias no realizadas no liberan presupuesto.
func (p Position) CostBasis() float64 {
	return p.Size * p.AvgPrice
}

// Holding es una posición de la cuenta vista en el resumen de portfolio.
type Holding struct {
	Market string // nombre o id truncado del mercado
	Size   float64
	Value  float64
}
