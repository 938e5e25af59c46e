package fulfillment

import (
	"context"
	"encoding/json"
	"log"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/arkanhadi/go-campus-services/internal/canteen"
	"github.com/arkanhadi/go-campus-services/internal/notify"
)

// StatusUpdater advances an order through the kitchen flow.
type StatusUpdater interface {
	UpdateStatus(ctx context.Context, orderID string, from, to canteen.Status) error
}

// Deduper remembers processed event ids across redeliveries.
type Deduper interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	Mark(ctx context.Context, eventID string) error
}

// Service consumes OrderPlaced events and acknowledges each order into
// the preparing state. Later transitions (ready, picked) come from the
// kitchen counter, not from here.
type Service struct {
	Orders StatusUpdater
	Dedup  Deduper
	Pub    notify.Publisher
}

// HandleOrderPlaced is wired as the consumer handler.
func (s *Service) HandleOrderPlaced(ctx context.Context, m kafkago.Message) error {
	var env notify.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != notify.EventOrderPlaced {
		return nil
	}

	seen, err := s.Dedup.Seen(ctx, env.EventID)
	if err != nil {
		return err
	}
	if seen {
		return nil
	}

	var p canteen.OrderPlaced
	if err := json.Unmarshal(env.Payload, &p); err != nil {
		return err
	}

	if err := s.Orders.UpdateStatus(ctx, p.OrderID, canteen.StatusPlaced, canteen.StatusPreparing); err != nil {
		// Already advanced by another worker; commit without retry.
		log.Printf("order %s not advanced: %v", p.OrderID, err)
	} else {
		s.Pub.Publish(notify.EventOrderStatusChanged, canteen.OrderStatusChanged{
			OrderID: p.OrderID,
			Status:  canteen.StatusPreparing,
		})
	}

	return s.Dedup.Mark(ctx, env.EventID)
}
