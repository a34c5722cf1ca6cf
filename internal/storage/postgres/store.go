package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ensScope/internal/model"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS ens_history_events (
	name             TEXT NOT NULL,
	event_id         TEXT NOT NULL,
	family           TEXT NOT NULL,
	event_type       TEXT NOT NULL,
	block_number     BIGINT NOT NULL,
	transaction_hash TEXT NOT NULL,
	data             JSONB NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (name, family, event_id)
);
CREATE INDEX IF NOT EXISTS ens_history_events_tx_idx ON ens_history_events (transaction_hash);
`

// Store provides Postgres persistence for name histories.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the history table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// PutHistoryBatch upserts history records. Re-exporting a name refreshes the
// stored payloads, which picks up values joined by the detailed history.
func (s *Store) PutHistoryBatch(ctx context.Context, records []model.HistoryRecord) error {
	if len(records) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, record := range records {
		data, err := json.Marshal(record.Event.Data)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", record.Event.ID, err)
		}
		batch.Queue(`
			INSERT INTO ens_history_events (
				name, event_id, family, event_type, block_number, transaction_hash, data, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
			ON CONFLICT (name, family, event_id)
			DO UPDATE SET
				event_type = EXCLUDED.event_type,
				block_number = EXCLUDED.block_number,
				transaction_hash = EXCLUDED.transaction_hash,
				data = EXCLUDED.data,
				updated_at = now()
		`,
			record.Name,
			record.Event.ID,
			string(record.Family),
			string(record.Event.Type),
			int64(record.Event.BlockNumber),
			record.Event.TransactionHash,
			data,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range records {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// StoredEvent is a persisted history row.
type StoredEvent struct {
	Family          model.Family    `json:"family"`
	Type            model.EventKind `json:"type"`
	ID              string          `json:"id"`
	BlockNumber     uint64          `json:"blockNumber"`
	TransactionHash string          `json:"transactionHash"`
	Data            json.RawMessage `json:"data"`
}

// LoadHistory returns the stored events of name ordered by block number.
func (s *Store) LoadHistory(ctx context.Context, name string) ([]StoredEvent, error) {
	if name == "" {
		return nil, fmt.Errorf("name required")
	}
	rows, err := s.pool.Query(ctx, `
		SELECT family, event_type, event_id, block_number, transaction_hash, data
		FROM ens_history_events
		WHERE name = $1
		ORDER BY block_number, family, event_id
	`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StoredEvent
	for rows.Next() {
		var (
			event       StoredEvent
			family      string
			kind        string
			blockNumber int64
			data        []byte
		)
		if err := rows.Scan(&family, &kind, &event.ID, &blockNumber, &event.TransactionHash, &data); err != nil {
			return nil, err
		}
		event.Family = model.Family(family)
		event.Type = model.EventKind(kind)
		event.BlockNumber = uint64(blockNumber)
		event.Data = data
		out = append(out, event)
	}
	return out, rows.Err()
}

// LastBlock returns the highest stored block number of name.
func (s *Store) LastBlock(ctx context.Context, name string) (uint64, bool, error) {
	var block *int64
	row := s.pool.QueryRow(ctx, `SELECT max(block_number) FROM ens_history_events WHERE name=$1`, name)
	if err := row.Scan(&block); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	if block == nil {
		return 0, false, nil
	}
	return uint64(*block), true, nil
}
