package ports

import (
	"context"

	"github.com/alejandrodnm/polyquoter/internal/domain"
)

// Exchange es el colaborador abstracto contra el CLOB: lecturas de mercado,
// estado de la cuenta y mutación de órdenes. El core solo conoce esta
// interfaz; firma, credenciales y detalles de protocolo viven en el adapter.
type Exchange interface {
	// GetOrderBook devuelve el book crudo de un token.
	GetOrderBook(ctx context.Context, tokenID string) (domain.OrderBook, error)

	// GetTickSize devuelve el incremento mínimo de precio del token.
	GetTickSize(ctx context.Context, tokenID string) (float64, error)

	// GetOpenOrders devuelve las órdenes propias abiertas de un mercado.
	GetOpenOrders(ctx context.Context, marketID string) ([]domain.OpenOrder, error)

	// CancelOrder cancela una orden por su id.
	CancelOrder(ctx context.Context, orderID string) error

	// CreateOrder firma y postea una orden limit GTC. size en contratos.
	// Devuelve el id de la orden creada.
	CreateOrder(ctx context.Context, tokenID string, side domain.Side, price, size float64) (string, error)

	// GetPosition devuelve la posición del mercado; cero si no hay.
	GetPosition(ctx context.Context, marketID string) (domain.Position, error)

	// GetHoldings devuelve todas las posiciones abiertas de la cuenta.
	// Se usa para el resumen de portfolio en las notificaciones de fill.
	GetHoldings(ctx context.Context) ([]domain.Holding, error)

	// GetFreeCash devuelve el USDC disponible en la cuenta.
	GetFreeCash(ctx context.Context) (float64, error)
}
