package outbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"caseflow/internal/events"
)

// PostgresStore implements Store on a single outbox table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the outbox table when absent.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS event_outbox (
			id UUID PRIMARY KEY,
			event_key TEXT NOT NULL,
			payload JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			published_at TIMESTAMPTZ
		)`)
	if err != nil {
		return fmt.Errorf("migrate event outbox: %w", err)
	}
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	id := event.ID
	if id == "" {
		id = uuid.NewString()
	}
	key := event.CourtCode + ":" + event.CaseNo

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO event_outbox (id, event_key, payload) VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO NOTHING`,
		id, key, payload)
	if err != nil {
		return fmt.Errorf("append event to outbox: %w", err)
	}
	return nil
}

func (s *PostgresStore) NextBatch(ctx context.Context, limit int) ([]Row, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, event_key, payload, created_at
		 FROM event_outbox
		 WHERE published_at IS NULL
		 ORDER BY created_at
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("read outbox batch: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		var created time.Time
		if err := rows.Scan(&r.ID, &r.Key, &r.Payload, &created); err != nil {
			return nil, fmt.Errorf("scan outbox row: %w", err)
		}
		r.CreatedAt = created
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) MarkPublished(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE event_outbox SET published_at = now() WHERE id IN (`+strings.Join(placeholders, ",")+`)`,
		args...)
	if err != nil {
		return fmt.Errorf("mark outbox rows published: %w", err)
	}
	return nil
}
