package kafka

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/donutopia/storefront/internal/analytics"
	"github.com/donutopia/storefront/pkg/tracing"
)

type Writer struct {
	*kafka.Writer
}

func NewWriter(brokers []string) *Writer {
	return &Writer{
		Writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

type Producer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Tracker publishes storefront events to a topic. Delivery failures are
// logged and swallowed: analytics never blocks an order.
type Tracker struct {
	log      *slog.Logger
	producer Producer
	topic    string
}

func NewTracker(log *slog.Logger, producer Producer, topic string) *Tracker {
	return &Tracker{log: log, producer: producer, topic: topic}
}

func (t *Tracker) Track(ctx context.Context, ev analytics.Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		t.log.Error("analytics marshal failed", "err", err)
		return
	}

	headers := []kafka.Header{{Key: "event_type", Value: []byte(ev.Action)}}
	headers = tracing.InjectKafkaHeaders(ctx, headers)

	msg := kafka.Message{
		Topic:   t.topic,
		Key:     []byte(ev.Category),
		Value:   payload,
		Headers: headers,
	}
	if err := t.producer.WriteMessages(ctx, msg); err != nil {
		t.log.Error("analytics publish failed", "category", ev.Category, "action", ev.Action, "err", err)
		return
	}
	t.log.Info("analytics published", "category", ev.Category, "action", ev.Action)
}
