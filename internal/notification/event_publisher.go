package notification

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
)

// EventPublisher mirrors every created notification onto an event stream for
// out-of-process consumers. The DB row is the source of truth; publishing is
// best-effort.
type EventPublisher interface {
	PublishCreated(ctx context.Context, n Notification) error
}

type noopEventPublisher struct{}

func (noopEventPublisher) PublishCreated(context.Context, Notification) error {
	return nil
}

// NewNoopEventPublisher is used when no broker is configured.
func NewNoopEventPublisher() EventPublisher {
	return noopEventPublisher{}
}

type kafkaEventPublisher struct {
	writer *kafkago.Writer
}

func NewKafkaEventPublisher(writer *kafkago.Writer) EventPublisher {
	return &kafkaEventPublisher{writer: writer}
}

func (p *kafkaEventPublisher) PublishCreated(ctx context.Context, n Notification) error {
	payload, err := json.Marshal(mapToResponse(n))
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(n.ID.String()),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "category", Value: []byte(n.Category)},
			{Key: "ref_type", Value: []byte(n.RefType)},
		},
	})
}
