package services

//go:generate mockgen -source=events.go -destination=mock_events.go -package=services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-blog/internal/logger"
	"github.com/sbilibin2017/gw-blog/internal/models"
	"github.com/segmentio/kafka-go"
)

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// eventPublisher publishes domain events to Kafka. A nil writer disables publishing.
type eventPublisher struct {
	writer KafkaWriter
}

func newEventPublisher(writer KafkaWriter) *eventPublisher {
	return &eventPublisher{writer: writer}
}

// publish sends one event. Failures are logged and never returned.
func (p *eventPublisher) publish(ctx context.Context, eventType string, subjectID, actorID uuid.UUID) {
	event := models.Event{
		EventID:   uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID.String(),
		ActorID:   actorID.String(),
		Timestamp: time.Now().Unix(),
	}

	if p == nil || p.writer == nil {
		logger.FromContext(ctx).Warnw("Kafka writer not configured, skipping publishing", "event_id", event.EventID, "type", eventType)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.FromContext(ctx).Errorw("Failed to marshal event for Kafka", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.EventID),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.FromContext(ctx).Errorw("Failed to publish event to Kafka", "event_id", event.EventID, "type", eventType, "error", err)
	} else {
		logger.FromContext(ctx).Infow("Event published to Kafka", "event_id", event.EventID, "type", eventType, "subject_id", event.SubjectID)
	}
}
