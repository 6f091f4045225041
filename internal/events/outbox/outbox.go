// Package outbox persists notification events before publication so a broker
// outage never loses an outcome. The drain worker publishes rows in order and
// marks them done; Kafka remains the delivery channel, the table is only a
// buffer.
package outbox

import (
	"context"
	"time"

	"caseflow/internal/events"
)

// Row is one buffered event awaiting publication.
type Row struct {
	ID        string
	Key       string
	Payload   []byte
	CreatedAt time.Time
}

// Store buffers events durably.
type Store interface {
	Append(ctx context.Context, event events.Event) error
	NextBatch(ctx context.Context, limit int) ([]Row, error)
	MarkPublished(ctx context.Context, ids []string) error
}

// Sink adapts a Store to the events.Sink interface.
type Sink struct {
	store Store
}

func NewSink(store Store) *Sink {
	return &Sink{store: store}
}

func (s *Sink) Emit(ctx context.Context, event events.Event) error {
	return s.store.Append(ctx, event)
}
