package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"caseflow/internal/events"
)

// MemoryStore is the in-process Store used in tests and broker-less
// development.
type MemoryStore struct {
	mu        sync.Mutex
	rows      []Row
	published map[string]bool
}

func NewMemory() *MemoryStore {
	return &MemoryStore{published: make(map[string]bool)}
}

func (s *MemoryStore) Append(_ context.Context, event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	id := event.ID
	if id == "" {
		id = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, Row{
		ID:        id,
		Key:       event.CourtCode + ":" + event.CaseNo,
		Payload:   payload,
		CreatedAt: time.Now(),
	})
	return nil
}

func (s *MemoryStore) NextBatch(_ context.Context, limit int) ([]Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Row
	for _, r := range s.rows {
		if s.published[r.ID] {
			continue
		}
		out = append(out, r)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *MemoryStore) MarkPublished(_ context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		s.published[id] = true
	}
	return nil
}
