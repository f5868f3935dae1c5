package ports

import (
	"context"

	"github.com/alejandrodnm/polyquoter/internal/domain"
)

// Notifier entrega eventos del bot al operador.
type Notifier interface {
	// NotifyRound comunica el resultado de una ronda completa. Las
	// implementaciones que no reportan rondas (push) devuelven nil.
	NotifyRound(ctx context.Context, round domain.RoundResult) error

	// NotifyFill comunica un fill detectado. portfolio es el resumen de
	// posiciones y cash ya formateado; puede estar vacío si falló la lectura.
	NotifyFill(ctx context.Context, fill domain.FillEvent, portfolio string) error

	// NotifyAlert comunica un evento operacional (arranque, parada,
	// fallas consecutivas).
	NotifyAlert(ctx context.Context, title, body string) error
}
