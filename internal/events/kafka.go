package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// Kafka writes events to a single topic keyed by appointment id, so all
// events for one appointment land on the same partition in order.
type Kafka struct {
	w *kafka.Writer
}

// NewKafka returns a publisher for brokers/topic.
func NewKafka(brokers []string, topic string) *Kafka {
	return &Kafka{w: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}}
}

func (k *Kafka) Publish(ctx context.Context, e Event) error {
	msg, err := buildMessage(ctx, e)
	if err != nil {
		return err
	}
	return k.w.WriteMessages(ctx, msg)
}

func (k *Kafka) Close() error { return k.w.Close() }

func buildMessage(ctx context.Context, e Event) (kafka.Message, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return kafka.Message{}, err
	}
	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(e.Appointment.ID, 10)),
		Value: body,
		Time:  e.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(e.ID)},
			{Key: "event_type", Value: []byte(e.Type)},
		},
	}
	carrier := &headerCarrier{headers: msg.Headers}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	msg.Headers = carrier.headers
	return msg, nil
}

// headerCarrier adapts Kafka headers to the OTel propagation API.
type headerCarrier struct {
	headers []kafka.Header
}

func (c *headerCarrier) Get(key string) string {
	for _, h := range c.headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c *headerCarrier) Keys() []string {
	keys := make([]string, 0, len(c.headers))
	for _, h := range c.headers {
		keys = append(keys, h.Key)
	}
	return keys
}

func (c *headerCarrier) Set(key, value string) {
	for i := range c.headers {
		if c.headers[i].Key == key {
			c.headers[i].Value = []byte(value)
			return
		}
	}
	c.headers = append(c.headers, kafka.Header{Key: key, Value: []byte(value)})
}

var _ propagation.TextMapCarrier = (*headerCarrier)(nil)
