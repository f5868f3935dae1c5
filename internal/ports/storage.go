package ports

import (
	"context"
	"time"

	"github.com/alejandrodnm/polyquoter/internal/domain"
)

// Storage persiste el histórico de rondas y fills.
type Storage interface {
	// SaveRound persiste el resumen de una ronda y el estado por mercado.
	SaveRound(ctx context.Context, round domain.RoundResult) error

	// SaveFill persiste un fill detectado.
	SaveFill(ctx context.Context, fill domain.FillEvent) error

	// GetFills devuelve los fills registrados en el rango dado.
	GetFills(ctx context.Context, from, to time.Time) ([]domain.FillEvent, error)

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}
