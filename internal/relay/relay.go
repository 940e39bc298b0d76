package relay

import (
	"context"
	"io"
	"log"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/reagan13/backend-itservice/internal/repository/outbox"
)

const defaultBatchSize = 100

// Publisher delivers one message to the broker.
type Publisher interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Relay drains pending outbox rows and publishes them. Delivery is
// at-least-once: a row is marked sent only after the broker accepts it, so
// a crash between the two repeats the message.
type Relay struct {
	repo      outbox.Repository
	publisher Publisher
	interval  time.Duration
	batchSize int
	logger    *log.Logger
}

func New(repo outbox.Repository, publisher Publisher, interval time.Duration, logger *log.Logger) *Relay {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Relay{
		repo:      repo,
		publisher: publisher,
		interval:  interval,
		batchSize: defaultBatchSize,
		logger:    logger,
	}
}

// NewWriter builds a kafka writer for the given comma-separated broker list.
func NewWriter(brokers string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}
}

// Run polls until the context is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		if err := r.Drain(ctx); err != nil {
			r.logger.Printf("relay: drain: %v", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Drain publishes one batch of pending rows, oldest first. It stops at the
// first failed publish so ordering within a key is preserved.
func (r *Relay) Drain(ctx context.Context) error {
	records, err := r.repo.FetchPending(ctx, r.batchSize)
	if err != nil {
		return err
	}
	for _, rec := range records {
		msg := kafka.Message{
			Topic: rec.Topic,
			Key:   []byte(rec.Key),
			Value: rec.Payload,
			Headers: []kafka.Header{
				{Key: "event_id", Value: []byte(rec.EventID)},
			},
		}
		if err := r.publisher.WriteMessages(ctx, msg); err != nil {
			return err
		}
		if err := r.repo.MarkSent(ctx, rec.ID); err != nil {
			return err
		}
		r.logger.Printf("relay: published event %s to %s", rec.EventID, rec.Topic)
	}
	return nil
}
