// Package producers publishes ledger lifecycle events to Kafka. Events are
// informational: a broker outage must never fail a bookkeeping request, so
// writes happen on a background worker pool.
package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/segmentio/kafka-go"

	"github.com/ledgerbook/internal/config"
)

// EntryEventProducer publishes entry lifecycle events asynchronously
type EntryEventProducer struct {
	writer       KafkaWriter
	pool         *ants.Pool
	logger       *slog.Logger
	writeTimeout time.Duration
}

// NewEntryEventProducer ensures the topic exists, then builds a producer
// backed by a worker pool of the configured size.
func NewEntryEventProducer(logger *slog.Logger, cfg *config.KafkaConfig, poolSize int) (*EntryEventProducer, error) {
	conn, err := kafka.Dial("tcp", cfg.Brokers)
	if err != nil {
		return nil, fmt.Errorf("failed to dial kafka broker: %w", err)
	}
	defer conn.Close()

	if err := createKafkaTopicIfNotExists(conn, cfg.EntryEventsTopic, cfg.NumPartitions, cfg.ReplicationFactor, logger); err != nil {
		return nil, err
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        cfg.EntryEventsTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &EntryEventProducer{
		writer:       writer,
		pool:         pool,
		logger:       logger,
		writeTimeout: cfg.WriteTimeout,
	}, nil
}

// NewEntryEventProducerWithWriter builds a producer over an existing writer.
// Used by tests to substitute a mock.
func NewEntryEventProducerWithWriter(logger *slog.Logger, writer KafkaWriter, poolSize int, writeTimeout time.Duration) (*EntryEventProducer, error) {
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}

	return &EntryEventProducer{
		writer:       writer,
		pool:         pool,
		logger:       logger,
		writeTimeout: writeTimeout,
	}, nil
}

// Publish serializes the event and hands it to the worker pool. The returned
// error covers serialization and pool submission only; broker failures are
// logged by the worker.
func (p *EntryEventProducer) Publish(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: payload,
	}

	err = p.pool.Submit(func() {
		writeCtx, cancel := context.WithTimeout(context.Background(), p.writeTimeout)
		defer cancel()

		if err := p.writer.WriteMessages(writeCtx, msg); err != nil {
			p.logger.Error("Failed to publish entry event", "key", key, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to submit event to worker pool: %w", err)
	}

	return nil
}

// Close drains the worker pool and closes the underlying writer
func (p *EntryEventProducer) Close() error {
	p.pool.Release()
	return p.writer.Close()
}

// Compile-time check: EntryEventProducer implements MessagePublisher
var _ MessagePublisher = (*EntryEventProducer)(nil)
