package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedReader hands out a fixed set of messages, then either returns
// fetchErr or blocks until the context is cancelled.
type scriptedReader struct {
	mu        sync.Mutex
	msgs      []kafka.Message
	fetchErr  error
	committed []int64
}

func (s *scriptedReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	s.mu.Lock()
	if len(s.msgs) > 0 {
		m := s.msgs[0]
		s.msgs = s.msgs[1:]
		s.mu.Unlock()
		return m, nil
	}
	err := s.fetchErr
	s.mu.Unlock()

	if err != nil {
		return kafka.Message{}, err
	}
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (s *scriptedReader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range msgs {
		s.committed = append(s.committed, m.Offset)
	}
	return nil
}

func (s *scriptedReader) committedOffsets() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.committed...)
}

func TestConsumeCommitsOnlyHandledMessages(t *testing.T) {
	drained := errors.New("drained")
	r := &scriptedReader{
		msgs: []kafka.Message{
			{Offset: 1, Key: []byte("ok")},
			{Offset: 2, Key: []byte("bad")},
			{Offset: 3, Key: []byte("ok")},
		},
		fetchErr: drained,
	}

	err := consume(context.Background(), r, "canteen.order.placed", 2, func(ctx context.Context, m kafka.Message) error {
		if string(m.Key) == "bad" {
			return errors.New("handler failed")
		}
		return nil
	})
	require.ErrorIs(t, err, drained)

	require.Eventually(t, func() bool {
		return len(r.committedOffsets()) == 2
	}, time.Second, 10*time.Millisecond)
	assert.ElementsMatch(t, []int64{1, 3}, r.committedOffsets())
}

func TestConsumeStopsCleanlyOnCancel(t *testing.T) {
	r := &scriptedReader{
		msgs: []kafka.Message{{Offset: 7, Key: []byte("k")}},
	}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- consume(ctx, r, "canteen.order.placed", 1, func(ctx context.Context, m kafka.Message) error {
			return nil
		})
	}()

	require.Eventually(t, func() bool {
		return len(r.committedOffsets()) == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("consume did not stop after cancel")
	}
}
