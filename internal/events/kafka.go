package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// messageWriter is the subset of kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// kafkaPublisher implements Publisher on top of a Kafka topic.
type kafkaPublisher struct {
	writer messageWriter
	logger zerolog.Logger
}

// NewKafkaPublisher creates a publisher writing order-synced events to the
// given brokers and topic.
func NewKafkaPublisher(brokers []string, topic string, logger zerolog.Logger) Publisher {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}

	logger = logger.With().Str("component", "event-publisher").Logger()
	logger.Info().
		Strs("brokers", brokers).
		Str("topic", topic).
		Msg("kafka publisher initialised")

	return &kafkaPublisher{
		writer: writer,
		logger: logger,
	}
}

// OrderSynced publishes an order-synced event keyed by session ID so events
// for one session stay ordered within a partition.
func (p *kafkaPublisher) OrderSynced(ctx context.Context, event OrderSyncedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.SessionID.String()),
		Value: payload,
	})
	if err != nil {
		p.logger.Error().
			Err(err).
			Str("session_id", event.SessionID.String()).
			Int64("order_id", event.OrderID).
			Msg("failed to publish order-synced event")
		return fmt.Errorf("failed to publish order-synced event: %w", err)
	}

	p.logger.Debug().
		Str("session_id", event.SessionID.String()).
		Int64("order_id", event.OrderID).
		Bool("created", event.Created).
		Msg("order-synced event published")

	return nil
}

// Close flushes and closes the underlying writer.
func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}
