package events

import (
	"context"
	"encoding/json"
	"fmt"
)

// Publisher is the outbound message surface the Kafka sink writes through.
type Publisher interface {
	Publish(ctx context.Context, key string, payload []byte) error
}

// KafkaSink publishes events to the notification topic. Delivery failures are
// returned for logging only; the pipeline never blocks on them.
type KafkaSink struct {
	producer Publisher
}

func NewKafkaSink(producer Publisher) *KafkaSink {
	return &KafkaSink{producer: producer}
}

func (s *KafkaSink) Emit(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	key := event.CourtCode + ":" + event.CaseNo
	return s.producer.Publish(ctx, key, payload)
}
