package notify

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/mcoot/eventease/internal/model"
)

// KafkaConfig holds Kafka producer settings
type KafkaConfig struct {
	Brokers []string
	Topic   string

	// BatchTimeout bounds how long a message waits for a batch to fill
	BatchTimeout time.Duration
}

// DefaultKafkaConfig returns defaults for a local broker
func DefaultKafkaConfig() KafkaConfig {
	return KafkaConfig{
		Brokers:      []string{"localhost:9092"},
		Topic:        "eventease.notifications",
		BatchTimeout: 10 * time.Millisecond,
	}
}

// MessageWriter is the subset of *kafka.Writer the publisher uses
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher streams notifications to a Kafka topic as JSON, keyed by
// event id so every change to one event lands on the same partition.
type KafkaPublisher struct {
	writer MessageWriter
}

// NewKafkaPublisher creates a publisher backed by a kafka.Writer
func NewKafkaPublisher(cfg KafkaConfig) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: cfg.BatchTimeout,
	}
	return &KafkaPublisher{writer: writer}
}

// NewKafkaPublisherWithWriter creates a publisher with an existing writer (for testing)
func NewKafkaPublisherWithWriter(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

// Publish writes the notification to the topic
func (p *KafkaPublisher) Publish(ctx context.Context, n model.Notification) error {
	msg, err := EncodeKafkaMessage(n)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

// Close flushes pending messages and closes the writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// kafkaPayload is the wire format of a notification
type kafkaPayload struct {
	Type           model.NotificationType `json:"type"`
	Timestamp      time.Time              `json:"timestamp"`
	EventID        int                    `json:"event_id"`
	RegistrationID int                    `json:"registration_id,omitempty"`
	AttendanceID   int                    `json:"attendance_id,omitempty"`
	Data           any                    `json:"data,omitempty"`
}

// EncodeKafkaMessage converts a notification into a Kafka message
func EncodeKafkaMessage(n model.Notification) (kafka.Message, error) {
	value, err := json.Marshal(kafkaPayload{
		Type:           n.Type,
		Timestamp:      n.Timestamp,
		EventID:        n.EventID,
		RegistrationID: n.RegistrationID,
		AttendanceID:   n.AttendanceID,
		Data:           n.Payload,
	})
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:   []byte(strconv.Itoa(n.EventID)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(n.Type)},
		},
		Time: n.Timestamp,
	}, nil
}
