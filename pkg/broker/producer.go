package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/gofrs/uuid/v5"
	"github.com/segmentio/kafka-go"
)

// Producer publishes entity-change audit events. A nil Producer is valid and
// drops events, so callers never need to branch on whether kafka is configured.
type Producer struct {
	l          *slog.Logger
	w          *kafka.Writer
	auditTopic string
}

func NewProducer(l *slog.Logger, brokers []string, topic string) *Producer {
	if len(brokers) == 0 {
		return nil
	}

	l = l.WithGroup("kafka").With("topic", topic)

	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "",
		Balancer:               &kafka.LeastBytes{},
		Async:                  true,
		Logger:                 &infoLogger{l: l},
		ErrorLogger:            &errorLogger{l: l},
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		l:          l,
		w:          w,
		auditTopic: topic,
	}
}

type EntityChangedEvent struct {
	ActorID  uuid.UUID `json:"actor_id"`
	Entity   string    `json:"entity"`
	Action   string    `json:"action"`
	EntityID string    `json:"entity_id"`
}

func (p *Producer) SendEntityChanged(ctx context.Context, actorID uuid.UUID, entity, action, entityID string) {
	if p == nil {
		return
	}

	event := EntityChangedEvent{
		ActorID:  actorID,
		Entity:   entity,
		Action:   action,
		EntityID: entityID,
	}

	b, err := json.Marshal(event)
	if err != nil {
		p.l.Error(fmt.Sprintf("marshal event: %s", err))
		return
	}

	err = p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(entityID),
		Value: b,
		Topic: p.auditTopic,
	})
	if err != nil {
		p.l.Error(fmt.Sprintf("write kafka message: %s", err))
		return
	}
}

func (p *Producer) Close() {
	if p == nil {
		return
	}

	err := p.w.Close()
	if err != nil {
		p.l.Error(fmt.Sprintf("close kafka writer: %s", err))
	}
}

type infoLogger struct {
	l *slog.Logger
}

func (l *infoLogger) Printf(format string, v ...any) {
	l.l.Info(fmt.Sprintf(format, v...))
}

type errorLogger struct {
	l *slog.Logger
}

func (l *errorLogger) Printf(format string, v ...any) {
	l.l.Error(fmt.Sprintf(format, v...))
}
