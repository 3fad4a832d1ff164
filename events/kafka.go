package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/yeremiapane/hotel-reservation/utils"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher queues envelopes on a buffered inbox and writes them from a single goroutine.
// A full inbox drops the event rather than stalling the request that produced it.
type KafkaPublisher struct {
	w       messageWriter
	inbox   chan kafka.Message
	closeCh chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewKafkaPublisher(brokers []string, topic string, buf int) *KafkaPublisher {
	return newKafkaPublisher(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
	}, buf)
}

func newKafkaPublisher(w messageWriter, buf int) *KafkaPublisher {
	return &KafkaPublisher{
		w:       w,
		inbox:   make(chan kafka.Message, buf),
		closeCh: make(chan struct{}),
	}
}

func (p *KafkaPublisher) Start(ctx context.Context) {
	go func() {
		defer close(p.closeCh)
		for m := range p.inbox {
			if err := p.w.WriteMessages(ctx, m); err != nil {
				utils.ErrorLogger.Printf("kafka: write %s failed: %v", m.Key, err)
			}
		}
		if err := p.w.Close(); err != nil {
			utils.ErrorLogger.Printf("kafka: close writer: %v", err)
		}
	}()
}

func (p *KafkaPublisher) Publish(_ context.Context, env Envelope) {
	value, err := json.Marshal(env)
	if err != nil {
		utils.ErrorLogger.Printf("kafka: marshal %s: %v", env.EventType, err)
		return
	}
	msg := kafka.Message{
		Key:   []byte(env.Key),
		Value: value,
		Time:  env.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(env.EventType)},
		},
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return
	}
	select {
	case p.inbox <- msg:
	default:
		utils.ErrorLogger.Printf("kafka: inbox full, dropping %s event %s", env.EventType, env.EventID)
	}
}

// Close stops accepting events; the writer goroutine flushes what is queued and exits.
func (p *KafkaPublisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.inbox)
}

func (p *KafkaPublisher) WaitClosed() { <-p.closeCh }
