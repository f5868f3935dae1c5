package storage

// sqlite.go — histórico de rondas y fills.
//
// Estrategia:
//   - `rounds`: resumen ligero por ronda (mercados, errores, duración). Siempre 1 fila.
//   - `market_stats`: UNA fila por mercado (UPSERT) con el último estado
//     observado y la analítica. Los mercados con error en la ronda no
//     pisan el último estado bueno.
//   - `fills`: una fila por fill detectado, con id uuid. Es el histórico
//     que importa para auditar la estrategia.
//   - Prune automático al arrancar: rounds > 30d, fills > 90d.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/alejandrodnm/polyquoter/internal/domain"
)

const schema = `
-- Resumen ligero por ronda
CREATE TABLE IF NOT EXISTS rounds (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    ran_at     DATETIME NOT NULL,
    markets    INTEGER  NOT NULL DEFAULT 0,
    errors     INTEGER  NOT NULL DEFAULT 0,
    elapsed_ms INTEGER  NOT NULL DEFAULT 0
);

-- Último estado observado por mercado, sin duplicados
CREATE TABLE IF NOT EXISTS market_stats (
    market_id      TEXT PRIMARY KEY,
    name           TEXT,
    side           TEXT    NOT NULL,
    best_bid       REAL    NOT NULL DEFAULT 0,
    best_ask       REAL    NOT NULL DEFAULT 0,
    buy_price      REAL    NOT NULL DEFAULT 0,
    sell_price     REAL    NOT NULL DEFAULT 0,
    tick_size      REAL    NOT NULL DEFAULT 0,
    position_value REAL    NOT NULL DEFAULT 0,
    max_position   REAL    NOT NULL DEFAULT 0,
    buy_orders     INTEGER NOT NULL DEFAULT 0,
    sell_orders    INTEGER NOT NULL DEFAULT 0,
    volume_24h     REAL    NOT NULL DEFAULT 0,
    turnover_ratio REAL    NOT NULL DEFAULT 0,
    yield_rate     REAL    NOT NULL DEFAULT 0,
    first_seen     DATETIME NOT NULL,
    last_seen      DATETIME NOT NULL
);

-- Histórico de fills detectados
CREATE TABLE IF NOT EXISTS fills (
    id          TEXT PRIMARY KEY,
    market_id   TEXT     NOT NULL,
    market_name TEXT,
    delta       REAL     NOT NULL,
    new_size    REAL     NOT NULL DEFAULT 0,
    new_value   REAL     NOT NULL DEFAULT 0,
    filled_at   DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_rounds_at     ON rounds(ran_at DESC);
CREATE INDEX IF NOT EXISTS idx_stats_last    ON market_stats(last_seen DESC);
CREATE INDEX IF NOT EXISTS idx_fills_at      ON fills(filled_at DESC);
CREATE INDEX IF NOT EXISTS idx_fills_market  ON fills(market_id);
`

const (
	retentionRounds = 30 * 24 * time.Hour // rondas: 30 días
	retentionFills  = 90 * 24 * time.Hour // fills: 90 días
)

// SQLiteStorage implementa ports.Storage usando SQLite (pure Go, sin CGo).
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage abre (o crea) la base de datos en la ruta dada.
// Aplica el schema y limpia datos antiguos.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}

	s := &SQLiteStorage{db: db}
	s.pruneOld(context.Background())
	return s, nil
}

// SaveRound persiste el resumen de la ronda y hace upsert del estado por
// mercado. Los mercados que fallaron esta ronda no tocan market_stats.
func (s *SQLiteStorage) SaveRound(ctx context.Context, round domain.RoundResult) error {
	at := round.At.UTC()

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO rounds (ran_at, markets, errors, elapsed_ms) VALUES (?, ?, ?, ?)`,
		at, len(round.Stats), round.Errors, round.Elapsed.Milliseconds(),
	); err != nil {
		return fmt.Errorf("storage.SaveRound: insert round: %w", err)
	}

	ok := make([]domain.MarketStat, 0, len(round.Stats))
	for _, st := range round.Stats {
		if st.Err == nil {
			ok = append(ok, st)
		}
	}
	if len(ok) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.SaveRound: begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO market_stats
			(market_id, name, side, best_bid, best_ask, buy_price, sell_price,
			 tick_size, position_value, max_position, buy_orders, sell_orders,
			 volume_24h, turnover_ratio, yield_rate, first_seen, last_seen)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(market_id) DO UPDATE SET
			name           = excluded.name,
			side           = excluded.side,
			best_bid       = excluded.best_bid,
			best_ask       = excluded.best_ask,
			buy_price      = excluded.buy_price,
			sell_price     = excluded.sell_price,
			tick_size      = excluded.tick_size,
			position_value = excluded.position_value,
			max_position   = excluded.max_position,
			buy_orders     = excluded.buy_orders,
			sell_orders    = excluded.sell_orders,
			volume_24h     = excluded.volume_24h,
			turnover_ratio = excluded.turnover_ratio,
			yield_rate     = excluded.yield_rate,
			last_seen      = excluded.last_seen
	`)
	if err != nil {
		return fmt.Errorf("storage.SaveRound: prepare: %w", err)
	}
	defer stmt.Close()

	for _, st := range ok {
		if _, err := stmt.ExecContext(ctx,
			st.MarketID,
			st.Name,
			string(st.Side),
			st.BestBid,
			st.BestAsk,
			st.BuyPrice,
			st.SellPrice,
			st.TickSize,
			st.PositionValue,
			st.MaxPosition,
			st.BuyOrders,
			st.SellOrders,
			st.Volume24h,
			st.TurnoverRatio,
			st.YieldRate,
			at, // first_seen: ignorado en ON CONFLICT (no se sobreescribe)
			at, // last_seen
		); err != nil {
			return fmt.Errorf("storage.SaveRound: upsert %s: %w", st.MarketID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.SaveRound: commit: %w", err)
	}
	return nil
}

// SaveFill persiste un fill detectado.
func (s *SQLiteStorage) SaveFill(ctx context.Context, fill domain.FillEvent) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO fills (id, market_id, market_name, delta, new_size, new_value, filled_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(),
		fill.MarketID,
		fill.MarketName,
		fill.Delta,
		fill.NewSize,
		fill.NewValue,
		fill.At.UTC(),
	); err != nil {
		return fmt.Errorf("storage.SaveFill: insert: %w", err)
	}
	return nil
}

// GetFills devuelve los fills del rango dado, los más recientes primero.
func (s *SQLiteStorage) GetFills(ctx context.Context, from, to time.Time) ([]domain.FillEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT market_id, market_name, delta, new_size, new_value, filled_at
		FROM fills
		WHERE filled_at BETWEEN ? AND ?
		ORDER BY filled_at DESC
	`, from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("storage.GetFills: query: %w", err)
	}
	defer rows.Close()

	var fills []domain.FillEvent
	for rows.Next() {
		var f domain.FillEvent
		var at string

		if err := rows.Scan(&f.MarketID, &f.MarketName, &f.Delta, &f.NewSize, &f.NewValue, &at); err != nil {
			return nil, fmt.Errorf("storage.GetFills: scan row: %w", err)
		}

		f.At, _ = time.Parse(time.RFC3339, at)
		fills = append(fills, f)
	}

	return fills, rows.Err()
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// pruneOld elimina datos antiguos para mantener la DB ligera.
func (s *SQLiteStorage) pruneOld(ctx context.Context) {
	cutoffRounds := time.Now().UTC().Add(-retentionRounds)
	cutoffFills := time.Now().UTC().Add(-retentionFills)
	s.db.ExecContext(ctx, `DELETE FROM rounds WHERE ran_at < ?`, cutoffRounds)
	s.db.ExecContext(ctx, `DELETE FROM market_stats WHERE last_seen < ?`, cutoffRounds)
	s.db.ExecContext(ctx, `DELETE FROM fills WHERE filled_at < ?`, cutoffFills)
}
