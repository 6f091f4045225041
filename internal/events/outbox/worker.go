package outbox

import (
	"context"
	"log/slog"
	"time"

	"caseflow/internal/events"
)

// Worker drains the outbox to the notification topic. Rows that fail to
// publish stay unmarked and are retried on the next sweep.
type Worker struct {
	store     Store
	producer  events.Publisher
	interval  time.Duration
	batchSize int
	logger    *slog.Logger
}

func NewWorker(store Store, producer events.Publisher, interval time.Duration, logger *slog.Logger) *Worker {
	return &Worker{
		store:     store,
		producer:  producer,
		interval:  interval,
		batchSize: 100,
		logger:    logger,
	}
}

// Run sweeps until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.Sweep(ctx); err != nil {
				w.logger.Error("outbox sweep failed", "error", err)
			}
		}
	}
}

// Sweep publishes one batch and marks the delivered rows.
func (w *Worker) Sweep(ctx context.Context) error {
	batch, err := w.store.NextBatch(ctx, w.batchSize)
	if err != nil {
		return err
	}

	var delivered []string
	for _, row := range batch {
		if err := w.producer.Publish(ctx, row.Key, row.Payload); err != nil {
			w.logger.Warn("event publish failed, will retry", "event_id", row.ID, "error", err)
			break
		}
		delivered = append(delivered, row.ID)
	}
	return w.store.MarkPublished(ctx, delivered)
}
