package notify

import (
	"time"

	"github.com/google/uuid"

	kafkax "github.com/arkanhadi/go-campus-services/internal/kafka"
	kafkago "github.com/segmentio/kafka-go"
)

// Publisher is the fire-and-forget side of a state change. Implementations
// must never block the caller and never surface delivery errors back into
// the ordering path.
type Publisher interface {
	Publish(eventType string, payload any)
}

// Keyed payloads choose their Kafka partition key so all events for one
// item or order stay ordered.
type Keyed interface {
	PartitionKey() string
}

// Fanout publishes to every sink in order.
type Fanout []Publisher

func (f Fanout) Publish(eventType string, payload any) {
	for _, p := range f {
		p.Publish(eventType, payload)
	}
}

// Stream wraps per-topic producers behind the Publisher contract.
type Stream struct {
	producers map[string]*kafkax.Producer // keyed by topic
	service   string
}

func NewStream(service string, producers map[string]*kafkax.Producer) *Stream {
	return &Stream{producers: producers, service: service}
}

func (s *Stream) Publish(eventType string, payload any) {
	topic, ok := TopicFor(eventType)
	if !ok {
		return
	}
	prod, ok := s.producers[topic]
	if !ok {
		return
	}

	ev := Envelope{
		EventID:      uuid.NewString(),
		EventType:    eventType,
		EventVersion: 1,
		OccurredAt:   time.Now().UTC(),
		Producer:     s.service,
		Payload:      kafkax.MustMarshal(payload),
	}

	key := ev.EventID
	if k, ok := payload.(Keyed); ok {
		key = k.PartitionKey()
	}
	prod.Publish([]byte(key), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
