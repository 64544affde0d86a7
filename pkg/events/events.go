package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/mastice-lab/storefront/pkg/tracing"
)

// Event is a domain fact leaving the process.
type Event struct {
	Type        string
	AggregateID string
	Payload     any
	OccurredAt  time.Time
}

type Producer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

type KafkaPublisher struct {
	log      *slog.Logger
	producer Producer
	topic    string
	source   string
}

func NewKafkaPublisher(log *slog.Logger, producer Producer, topic, source string) *KafkaPublisher {
	return &KafkaPublisher{log: log, producer: producer, topic: topic, source: source}
}

func NewWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.LeastBytes{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev.Payload)
	if err != nil {
		return fmt.Errorf("encode %s: %w", ev.Type, err)
	}

	occurred := ev.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now().UTC()
	}

	headers := []kafka.Header{
		{Key: "event_type", Value: []byte(ev.Type)},
		{Key: "source", Value: []byte(p.source)},
		{Key: "occurred_at", Value: []byte(occurred.Format(time.RFC3339Nano))},
	}
	headers = tracing.InjectKafkaHeaders(ctx, headers)

	msg := kafka.Message{
		Topic:   p.topic,
		Key:     []byte(ev.AggregateID),
		Value:   payload,
		Headers: headers,
	}
	if err := p.producer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("event publish failed", "type", ev.Type, "aggregate_id", ev.AggregateID, "err", err)
		return err
	}
	p.log.Info("event published", "type", ev.Type, "aggregate_id", ev.AggregateID, "topic", p.topic)
	return nil
}

// LogPublisher is used when no broker is configured; events only reach the log.
type LogPublisher struct {
	log *slog.Logger
}

func NewLogPublisher(log *slog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, ev Event) error {
	p.log.Info("event", "type", ev.Type, "aggregate_id", ev.AggregateID)
	return nil
}
