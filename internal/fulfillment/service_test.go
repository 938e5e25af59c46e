package fulfillment

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkanhadi/go-campus-services/internal/canteen"
	"github.com/arkanhadi/go-campus-services/internal/notify"
)

type fakeUpdater struct {
	calls []string
	err   error
}

func (f *fakeUpdater) UpdateStatus(ctx context.Context, orderID string, from, to canteen.Status) error {
	f.calls = append(f.calls, orderID+":"+string(from)+">"+string(to))
	return f.err
}

type fakeDedup struct {
	seen   map[string]bool
	marked []string
}

func (f *fakeDedup) Seen(ctx context.Context, id string) (bool, error) { return f.seen[id], nil }
func (f *fakeDedup) Mark(ctx context.Context, id string) error {
	f.marked = append(f.marked, id)
	return nil
}

type fakePub struct {
	events []string
}

func (f *fakePub) Publish(eventType string, payload any) {
	f.events = append(f.events, eventType)
}

func message(t *testing.T, eventID, eventType string, payload any) kafkago.Message {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	env := notify.Envelope{
		EventID:      eventID,
		EventType:    eventType,
		EventVersion: 1,
		OccurredAt:   time.Now().UTC(),
		Producer:     "test",
		Payload:      raw,
	}
	b, err := json.Marshal(env)
	require.NoError(t, err)
	return kafkago.Message{Value: b}
}

func TestHandleOrderPlacedAdvancesStatus(t *testing.T) {
	upd := &fakeUpdater{}
	ded := &fakeDedup{seen: map[string]bool{}}
	pub := &fakePub{}
	svc := &Service{Orders: upd, Dedup: ded, Pub: pub}

	m := message(t, "ev-1", notify.EventOrderPlaced, canteen.OrderPlaced{OrderID: "ord-1", Quantity: 2})
	require.NoError(t, svc.HandleOrderPlaced(context.Background(), m))

	assert.Equal(t, []string{"ord-1:placed>preparing"}, upd.calls)
	assert.Equal(t, []string{notify.EventOrderStatusChanged}, pub.events)
	assert.Equal(t, []string{"ev-1"}, ded.marked)
}

func TestHandleOrderPlacedSkipsDuplicate(t *testing.T) {
	upd := &fakeUpdater{}
	ded := &fakeDedup{seen: map[string]bool{"ev-1": true}}
	pub := &fakePub{}
	svc := &Service{Orders: upd, Dedup: ded, Pub: pub}

	m := message(t, "ev-1", notify.EventOrderPlaced, canteen.OrderPlaced{OrderID: "ord-1"})
	require.NoError(t, svc.HandleOrderPlaced(context.Background(), m))

	assert.Empty(t, upd.calls)
	assert.Empty(t, pub.events)
	assert.Empty(t, ded.marked)
}

func TestHandleOrderPlacedIgnoresOtherEventTypes(t *testing.T) {
	upd := &fakeUpdater{}
	ded := &fakeDedup{seen: map[string]bool{}}
	svc := &Service{Orders: upd, Dedup: ded, Pub: &fakePub{}}

	m := message(t, "ev-2", notify.EventCatalogChanged, canteen.CatalogChanged{ItemID: "it-1"})
	require.NoError(t, svc.HandleOrderPlaced(context.Background(), m))
	assert.Empty(t, upd.calls)
}

func TestHandleOrderPlacedCommitsWhenAlreadyAdvanced(t *testing.T) {
	upd := &fakeUpdater{err: assert.AnError}
	ded := &fakeDedup{seen: map[string]bool{}}
	pub := &fakePub{}
	svc := &Service{Orders: upd, Dedup: ded, Pub: pub}

	m := message(t, "ev-3", notify.EventOrderPlaced, canteen.OrderPlaced{OrderID: "ord-9"})
	require.NoError(t, svc.HandleOrderPlaced(context.Background(), m), "no retry on lost race")

	assert.Empty(t, pub.events)
	assert.Equal(t, []string{"ev-3"}, ded.marked)
}
