package producers

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// KafkaWriter abstracts the kafka-go writer for testability
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// MessagePublisher is the interface services use to emit ledger events.
// Publishing is best-effort: implementations must never block the caller
// on broker availability.
type MessagePublisher interface {
	Publish(ctx context.Context, key string, value interface{}) error
	Close() error
}
