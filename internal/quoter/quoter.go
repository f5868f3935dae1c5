package quoter

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/alejandrodnm/polyquoter/config"
	"github.com/alejandrodnm/polyquoter/internal/domain"
	"github.com/alejandrodnm/polyquoter/internal/ports"
)

// Config son los parámetros de operación del scheduler.
type Config struct {
	// Interval es la pausa entre el fin de una ronda y el inicio de la
	// siguiente.
	Interval time.Duration

	// MarketsFile es el archivo de mercados; se relee en cada ronda para
	// poder habilitar/deshabilitar mercados sin reiniciar.
	MarketsFile string

	// FailureAlertThreshold es el número de rondas fallidas consecutivas
	// que dispara la alerta al operador.
	FailureAlertThreshold int
}

// Quoter orquesta las rondas de quoting sobre todos los mercados
// habilitados. Cada mercado se procesa en su propia goroutine; un mercado
// que falla no afecta a los demás ni a la ronda.
type Quoter struct {
	cfg      Config
	exchange ports.Exchange
	meta     ports.MetaProvider
	storage  ports.Storage
	notifier ports.Notifier
	fills    *fillTracker
	log      *slog.Logger
}

// New crea el quoter con sus colaboradores.
func New(cfg Config, exchange ports.Exchange, meta ports.MetaProvider, storage ports.Storage, notifier ports.Notifier) *Quoter {
	return &Quoter{
		cfg:      cfg,
		exchange: exchange,
		meta:     meta,
		storage:  storage,
		notifier: notifier,
		fills:    newFillTracker(),
		log:      slog.Default(),
	}
}

// Run ejecuta rondas hasta que el contexto se cancele. Lleva la cuenta de
// rondas fallidas consecutivas y alerta al operador al llegar al umbral;
// una ronda completamente limpia resetea el contador.
func (q *Quoter) Run(ctx context.Context) error {
	if err := q.notifier.NotifyAlert(ctx, "quoter started",
		fmt.Sprintf("interval %s, markets file %s", q.cfg.Interval, q.cfg.MarketsFile)); err != nil {
		q.log.Warn("startup alert failed", "err", err)
	}

	consecutive := 0
	ticker := time.NewTicker(q.cfg.Interval)
	defer ticker.Stop()

	for {
		round, err := q.RunRound(ctx)
		switch {
		case ctx.Err() != nil:
			// cancelado a mitad de ronda: no cuenta como fallo
		case err != nil:
			consecutive++
			q.log.Error("round failed", "consecutive", consecutive, "err", err)
			if consecutive == q.cfg.FailureAlertThreshold {
				q.notifier.NotifyAlert(ctx, "quoter degraded",
					fmt.Sprintf("%d consecutive round failures, last: %v", consecutive, err))
			}
		case round.Errors == 0:
			consecutive = 0
		}

		select {
		case <-ctx.Done():
			q.notifier.NotifyAlert(context.WithoutCancel(ctx), "quoter stopped", "")
			return nil
		case <-ticker.C:
		}
	}
}

// RunRound ejecuta una ronda completa: recarga los mercados, los procesa
// en paralelo y entrega el resultado al reporte y al histórico. Devuelve
// error solo si la ronda no pudo ni empezar (archivo de mercados ilegible);
// los fallos por mercado viajan dentro del resultado.
func (q *Quoter) RunRound(ctx context.Context) (domain.RoundResult, error) {
	start := time.Now()

	markets, err := config.LoadMarkets(q.cfg.MarketsFile)
	if err != nil {
		return domain.RoundResult{}, fmt.Errorf("quoter.RunRound: %w", err)
	}

	metaByID := q.fetchMeta(ctx, markets)

	stats := make([]domain.MarketStat, len(markets))
	var wg sync.WaitGroup
	for i, m := range markets {
		wg.Add(1)
		go func(i int, m domain.MarketConfig) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					stats[i] = domain.MarketStat{
						MarketID: m.MarketID,
						Name:     m.Name,
						Side:     m.TradeSide,
						Err:      fmt.Errorf("panic: %v", r),
					}
				}
			}()
			stats[i] = q.processMarket(ctx, m, metaByID[m.MarketID])
		}(i, m)
	}
	wg.Wait()

	round := domain.RoundResult{
		At:      start,
		Stats:   stats,
		Elapsed: time.Since(start),
	}
	for _, s := range stats {
		if s.Err != nil {
			round.Errors++
		}
	}

	if err := q.notifier.NotifyRound(ctx, round); err != nil {
		q.log.Warn("round report failed", "err", err)
	}
	if err := q.storage.SaveRound(ctx, round); err != nil {
		q.log.Warn("round not persisted", "err", err)
	}

	q.log.Info("round complete",
		"markets", len(markets),
		"errors", round.Errors,
		"elapsed", round.Elapsed.Round(time.Millisecond),
	)
	return round, nil
}

// fetchMeta trae la metadata de Gamma para la analítica. Es opcional: si
// Gamma no responde, la ronda sigue sin volúmenes.
func (q *Quoter) fetchMeta(ctx context.Context, markets []domain.MarketConfig) map[string]domain.MarketMeta {
	ids := make([]string, 0, len(markets))
	for _, m := range markets {
		ids = append(ids, m.MarketID)
	}

	metaByID, err := q.meta.FetchMarketMeta(ctx, ids)
	if err != nil {
		q.log.Warn("market metadata unavailable", "err", err)
		return map[string]domain.MarketMeta{}
	}
	return metaByID
}
