// Package events announces recorded clicks to downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"shortener-analytics/internal/domain"
)

// ClickRecordedType is the event type carried by every message
const ClickRecordedType = "click.recorded"

const publishTimeout = 5 * time.Second

// ClickRecorded is the message body published after a click is stored
type ClickRecorded struct {
	Type       string    `json:"type"`
	ClickID    uint      `json:"clickId"`
	LinkID     uint      `json:"linkId"`
	ClickedAt  time.Time `json:"clickedAt"`
	DeviceType *string   `json:"deviceType"`
	Browser    *string   `json:"browser"`
	OS         *string   `json:"os"`
	Country    *string   `json:"country"`
	Referer    *string   `json:"referer"`
}

// NewClickRecorded builds the message for a stored event
func NewClickRecorded(event *domain.ClickEvent) ClickRecorded {
	return ClickRecorded{
		Type:       ClickRecordedType,
		ClickID:    event.ID,
		LinkID:     event.LinkID,
		ClickedAt:  event.ClickedAt,
		DeviceType: event.DeviceType,
		Browser:    event.Browser,
		OS:         event.OS,
		Country:    event.Country,
		Referer:    event.Referer,
	}
}

// Publisher delivers click.recorded events. Delivery is best effort.
type Publisher interface {
	PublishClick(ctx context.Context, event *domain.ClickEvent) error
	Close() error
}

// messageWriter is the subset of *kafka.Writer we use
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events to one topic, keyed by link id so a link's
// clicks stay ordered within a partition
type KafkaPublisher struct {
	writer messageWriter
}

// NewKafkaPublisher creates a publisher backed by a long-lived writer
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			BatchTimeout:           50 * time.Millisecond,
		},
	}
}

func (p *KafkaPublisher) PublishClick(ctx context.Context, event *domain.ClickEvent) error {
	value, err := json.Marshal(NewClickRecorded(event))
	if err != nil {
		return fmt.Errorf("failed to encode click event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(event.LinkID), 10)),
		Value: value,
		Time:  event.ClickedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to publish click event: %w", err)
	}

	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher is used when no brokers are configured
type NoopPublisher struct{}

func (NoopPublisher) PublishClick(context.Context, *domain.ClickEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
