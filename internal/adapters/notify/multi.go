package notify

import (
	"context"
	"errors"

	"github.com/alejandrodnm/polyquoter/internal/domain"
	"github.com/alejandrodnm/polyquoter/internal/ports"
)

// Multi reparte cada notificación a varios notificadores. Un canal que
// falla no bloquea a los demás; los errores se acumulan y se devuelven
// juntos.
type Multi struct {
	targets []ports.Notifier
}

// NewMulti crea el fan-out sobre los notificadores dados.
func NewMulti(targets ...ports.Notifier) *Multi {
	return &Multi{targets: targets}
}

func (m *Multi) NotifyRound(ctx context.Context, round domain.RoundResult) error {
	var errs []error
	for _, t := range m.targets {
		if err := t.NotifyRound(ctx, round); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *Multi) NotifyFill(ctx context.Context, fill domain.FillEvent, portfolio string) error {
	var errs []error
	for _, t := range m.targets {
		if err := t.NotifyFill(ctx, fill, portfolio); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *Multi) NotifyAlert(ctx context.Context, title, body string) error {
	var errs []error
	for _, t := range m.targets {
		if err := t.NotifyAlert(ctx, title, body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
