package messaging

import (
	"context"
	"log/slog"

	"wheelshare/internal/pkg/config"
	"wheelshare/internal/pkg/errs"
	"wheelshare/internal/usecase/shared"

	"github.com/segmentio/kafka-go"
)

const (
	HeaderEventID       = "event-id"
	HeaderEventType     = "event-type"
	HeaderCorrelationID = "correlation-id"
)

var (
	ErrNoBrokers  = errs.New("at least one kafka broker is required")
	ErrEmptyTopic = errs.New("kafka topic cannot be empty")
)

// messageWriter is the part of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes outbox events keyed by aggregate id, so events of
// one reservation stay ordered within a partition.
type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(cfg config.EventsConfig, logger *slog.Logger) (*KafkaPublisher, error) {
	if len(cfg.KafkaBrokers) == 0 {
		return nil, ErrNoBrokers
	}
	if cfg.KafkaTopic == "" {
		return nil, ErrEmptyTopic
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Logger:       kafka.LoggerFunc(func(string, ...any) {}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			logger.Error("kafka writer error", "detail", slog.AnyValue(args), "message", msg)
		}),
	}
	return &KafkaPublisher{writer: writer}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, events []shared.OutboxEvent) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		msgs = append(msgs, toMessage(e))
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return errs.Wrap(err, "failed to write outbox events to kafka")
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func toMessage(e shared.OutboxEvent) kafka.Message {
	headers := []kafka.Header{
		{Key: HeaderEventID, Value: []byte(e.ID.String())},
		{Key: HeaderEventType, Value: []byte(e.EventType)},
	}
	if e.CorrelationID != "" {
		headers = append(headers, kafka.Header{Key: HeaderCorrelationID, Value: []byte(e.CorrelationID)})
	}
	return kafka.Message{
		Key:     []byte(e.AggregateID.String()),
		Value:   e.Payload,
		Time:    e.OccurredAt,
		Headers: headers,
	}
}
