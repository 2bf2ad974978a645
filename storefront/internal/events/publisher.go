// Package events announces completed rentals on kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/wtfrudb/movie-catalog/storefront/internal/domain"
)

const (
	DefaultTopic = "rental-events"

	RentalCreatedType = "rental.created"

	batchTimeout   = 10 * time.Millisecond
	publishTimeout = 2 * time.Second
)

// RentalCreated is the payload of a rental.created event.
type RentalCreated struct {
	EventID    string                     `json:"event_id"`
	BrowserID  string                     `json:"browser_id"`
	Items      []domain.RentalRequestItem `json:"items"`
	ReturnDate string                     `json:"return_date"`
	CreatedAt  time.Time                  `json:"created_at"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes rental events keyed by browser id so one browser's
// events stay ordered. A Publisher without brokers drops everything.
type Publisher struct {
	writer  messageWriter
	now     func() time.Time
	timeout time.Duration
}

// NewPublisher writes to topic on brokers. With no brokers it returns a
// publisher that drops every event.
func NewPublisher(topic string, brokers ...string) *Publisher {
	if len(brokers) == 0 {
		return &Publisher{now: time.Now, timeout: publishTimeout}
	}
	if topic == "" {
		topic = DefaultTopic
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           batchTimeout,
		AllowAutoTopicCreation: true,
	}
	return &Publisher{writer: w, now: time.Now, timeout: publishTimeout}
}

// Enabled reports whether brokers were configured.
func (p *Publisher) Enabled() bool {
	return p.writer != nil
}

// RentalCreated publishes the rental the browser just placed. The write
// outlives a cancelled ctx but is bounded by the publish timeout.
func (p *Publisher) RentalCreated(ctx context.Context, browserID string, req domain.RentalRequest) error {
	if p.writer == nil {
		return nil
	}

	event := RentalCreated{
		EventID:   uuid.NewString(),
		BrowserID: browserID,
		Items:     req.Items,
		CreatedAt: p.now().UTC(),
	}
	if len(req.Items) > 0 {
		event.ReturnDate = req.Items[0].ReturnDate
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal rental event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(browserID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(RentalCreatedType)},
			{Key: "event_id", Value: []byte(event.EventID)},
		},
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish rental event: %w", err)
	}
	return nil
}

// Close flushes and closes the writer.
func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
