package kafka

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// Handler must return nil only when the message was processed and the
// offset may be committed.
type Handler func(ctx context.Context, m kafka.Message) error

// fetchCommitter is the slice of kafka.Reader the consume loop uses.
type fetchCommitter interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

type Consumer struct {
	reader  *kafka.Reader
	topic   string
	workers int
}

func NewConsumer(brokers []string, group, topic string, workers int) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		GroupID:        group,
		Topic:          topic,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: 0, // commit per message, after the handler succeeds
	})
	if workers <= 0 {
		workers = 1
	}
	return &Consumer{reader: r, topic: topic, workers: workers}
}

func (c *Consumer) Start(ctx context.Context, h Handler) error {
	defer c.reader.Close()
	return consume(ctx, c.reader, c.topic, c.workers, h)
}

func consume(ctx context.Context, r fetchCommitter, topic string, workers int, h Handler) error {
	jobs := make(chan kafka.Message, 1024)
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		id := i
		go func() {
			for m := range jobs {
				if err := h(ctx, m); err != nil {
					errs <- fmt.Errorf("%s worker %d: %w", topic, id, err)
					continue
				}
				if err := r.CommitMessages(ctx, m); err != nil {
					errs <- fmt.Errorf("%s worker %d commit: %w", topic, id, err)
				}
			}
		}()
	}

	for {
		m, err := r.FetchMessage(ctx)
		if err != nil {
			close(jobs)
			select {
			case <-ctx.Done():
				return nil
			default:
				return err
			}
		}
		select {
		case jobs <- m:
		case <-ctx.Done():
			close(jobs)
			return nil
		}

		// drain worker errors without blocking the dispatch loop
		select {
		case e := <-errs:
			log.Printf("consumer %s: %v", topic, e)
			time.Sleep(200 * time.Millisecond)
		default:
		}
	}
}
