package domain

// TradeSide indica cuál de los dos tokens del mercado se opera.
type TradeSide string

const (
	TradeYes TradeSide = "yes"
	TradeNo  TradeSide = "no"
)

// MarketConfig es la configuración de un mercado binario a operar.
// Inmutable dentro de una ronda; se recarga del archivo de mercados al
// inicio de cada ronda. El tick size no se configura: se consulta al CLOB.
type MarketConfig struct {
	Name             string
	MarketID         string // condition id del mercado
	YesTokenID       string
	NoTokenID        string
	TradeSide        TradeSide
	Enabled          bool
	MaxPositionValue float64 // tope de posición en USDC (costo de entrada)
}

// TokenID devuelve el token del lado elegido para operar.
func (m MarketConfig) TokenID() string {
	if m.TradeSide == TradeYes {
		return m.YesTokenID
	}
	return m.NoTokenID
}

// Valid devuelve false si faltan campos requeridos para operar el mercado.
func (m MarketConfig) Valid() bool {
	return m.MarketID != "" && m.TokenID() != "" && m.MaxPositionValue > 0
}
