package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	EventReservationCreated   = "reservation_created"
	EventReservationCancelled = "reservation_cancelled"
	EventReservationDeleted   = "reservation_deleted"
	EventRoomAvailability     = "room_availability_changed"
)

// Envelope is the wire format shared by the WebSocket feed and Kafka.
type Envelope struct {
	EventID    string      `json:"event_id"`
	EventType  string      `json:"event_type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Producer   string      `json:"producer"`
	Data       interface{} `json:"data"`

	// Key orders events for one aggregate on the same Kafka partition.
	Key string `json:"-"`
}

func NewEnvelope(producer, eventType, key string, data interface{}) Envelope {
	return Envelope{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: time.Now().UTC(),
		Producer:   producer,
		Data:       data,
		Key:        key,
	}
}

// Publisher delivers envelopes best-effort. Implementations log their own failures.
type Publisher interface {
	Publish(ctx context.Context, env Envelope)
}

// Multi fans an envelope out to every publisher in order.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, env Envelope) {
	for _, p := range m {
		if p != nil {
			p.Publish(ctx, env)
		}
	}
}

type Nop struct{}

func (Nop) Publish(context.Context, Envelope) {}
