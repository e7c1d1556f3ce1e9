package repository

import (
	"context"
	"database/sql"
	"fmt"

	"BarPulse/internal/domain/models"
)

const journalTable = "journal_entries"

var journalSchema = []string{
	`CREATE TABLE IF NOT EXISTS ` + journalTable + ` (
		id         String,
		symbol     LowCardinality(String),
		side       LowCardinality(String),
		entry      Float64,
		stop       Float64,
		target     Float64,
		notes      String,
		created_at DateTime64(3, 'UTC')
	) ENGINE = MergeTree()
	ORDER BY (symbol, created_at)`,
}

// ClickHouseJournalStore persists journal entries in ClickHouse.
type ClickHouseJournalStore struct {
	db *sql.DB
}

// NewClickHouseJournalStore creates a ClickHouse-backed journal store.
func NewClickHouseJournalStore(db *sql.DB) *ClickHouseJournalStore {
	return &ClickHouseJournalStore{db: db}
}

// Init ensures the journal table exists (idempotent).
func (s *ClickHouseJournalStore) Init(ctx context.Context) error {
	for _, stmt := range journalSchema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("journal schema: %w", err)
		}
	}
	return nil
}

func (s *ClickHouseJournalStore) Append(ctx context.Context, e *models.JournalEntry) error {
	q := fmt.Sprintf(
		"INSERT INTO %s (id, symbol, side, entry, stop, target, notes, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		journalTable,
	)
	_, err := s.db.ExecContext(ctx, q,
		e.ID,
		e.Symbol,
		e.Side,
		e.Entry,
		e.Stop,
		e.Target,
		e.Notes,
		e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("journal insert: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *ClickHouseJournalStore) Close() error {
	return s.db.Close()
}
