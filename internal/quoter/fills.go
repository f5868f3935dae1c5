package quoter

import (
	"sync"
	"time"

	"github.com/alejandrodnm/polyquoter/internal/domain"
)

// fillNoise es el cambio mínimo de posición que se considera un fill real.
// El data-api redondea tamaños; por debajo de esto es ruido de precisión.
const fillNoise = 0.01

// fillTracker detecta fills comparando la posición de cada mercado entre
// rondas. No hay feed de trades: el delta de posición es la única señal.
type fillTracker struct {
	mu   sync.Mutex
	last map[string]float64 // marketID → tamaño de la ronda anterior
}

func newFillTracker() *fillTracker {
	return &fillTracker{last: make(map[string]float64)}
}

// Observe registra la posición actual y devuelve un evento si cambió más
// que el ruido respecto a la ronda anterior. La primera observación de un
// mercado solo fija la línea base, nunca emite evento.
func (t *fillTracker) Observe(marketID, name string, pos domain.Position, at time.Time) (domain.FillEvent, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev, seen := t.last[marketID]
	t.last[marketID] = pos.Size

	if !seen {
		return domain.FillEvent{}, false
	}

	delta := pos.Size - prev
	if delta > -fillNoise && delta < fillNoise {
		return domain.FillEvent{}, false
	}

	return domain.FillEvent{
		MarketID:   marketID,
		MarketName: name,
		Delta:      delta,
		NewSize:    pos.Size,
		NewValue:   pos.CurrentValue,
		At:         at,
	}, true
}
