package repository

import (
	"context"
	"fmt"

	"BarPulse/internal/domain/models"
	pkgkafka "BarPulse/pkg/kafka"
)

// KafkaJournalStore publishes journal entries to a Kafka topic, keyed by
// symbol so one instrument's entries stay ordered.
type KafkaJournalStore struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaJournalStore creates a Kafka-backed journal publisher.
func NewKafkaJournalStore(producer *pkgkafka.Producer, topic string) *KafkaJournalStore {
	return &KafkaJournalStore{producer: producer, topic: topic}
}

// Init is a no-op; topic management is external.
func (s *KafkaJournalStore) Init(ctx context.Context) error {
	return nil
}

func (s *KafkaJournalStore) Append(ctx context.Context, e *models.JournalEntry) error {
	if err := s.producer.Publish(ctx, s.topic, []byte(e.Symbol), e); err != nil {
		return fmt.Errorf("journal publish: %w", err)
	}
	return nil
}

func (s *KafkaJournalStore) Close() error {
	return s.producer.Close()
}
