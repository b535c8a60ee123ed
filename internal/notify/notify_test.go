package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/eventease/internal/model"
	"github.com/mcoot/eventease/internal/testutil"
)

type recordingWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func checkedIn() model.Notification {
	return model.Notification{
		Type:           model.NotificationCheckedIn,
		Timestamp:      time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC),
		EventID:        7,
		RegistrationID: 3,
		AttendanceID:   1,
		Payload:        &model.AttendanceRecord{ID: 1, EventID: 7, RegistrationID: 3, IsPresent: true},
	}
}

func TestKafkaPublisherWritesKeyedJSON(t *testing.T) {
	writer := &recordingWriter{}
	pub := NewKafkaPublisherWithWriter(writer)

	require.NoError(t, pub.Publish(context.Background(), checkedIn()))
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, "7", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "attendee_checked_in", string(msg.Headers[0].Value))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "attendee_checked_in", decoded["type"])
	assert.EqualValues(t, 7, decoded["event_id"])
	assert.EqualValues(t, 1, decoded["attendance_id"])
	assert.NotNil(t, decoded["data"])

	require.NoError(t, pub.Close())
	assert.True(t, writer.closed)
}

func TestKafkaPublisherReturnsWriteError(t *testing.T) {
	writer := &recordingWriter{err: errors.New("broker unavailable")}
	pub := NewKafkaPublisherWithWriter(writer)

	err := pub.Publish(context.Background(), checkedIn())
	assert.EqualError(t, err, "broker unavailable")
}

func TestFanoutDeliversToAllAndJoinsErrors(t *testing.T) {
	var delivered int
	ok := PublisherFunc(func(context.Context, model.Notification) error {
		delivered++
		return nil
	})
	failing := PublisherFunc(func(context.Context, model.Notification) error {
		return errors.New("boom")
	})

	err := Fanout{ok, failing, ok}.Publish(context.Background(), checkedIn())
	assert.Error(t, err)
	assert.Equal(t, 2, delivered)
}

func TestLogPublisherLogsType(t *testing.T) {
	var buf bytes.Buffer
	pub := NewLogPublisher(testutil.BufferLogger(&buf))

	require.NoError(t, pub.Publish(context.Background(), checkedIn()))
	assert.Contains(t, buf.String(), `"type":"attendee_checked_in"`)
	assert.Contains(t, buf.String(), `"component":"notify"`)
}

func TestSendLogsFailures(t *testing.T) {
	var buf bytes.Buffer
	failing := PublisherFunc(func(context.Context, model.Notification) error {
		return errors.New("boom")
	})

	Send(context.Background(), failing, testutil.BufferLogger(&buf), checkedIn())
	assert.Contains(t, buf.String(), "failed to publish notification")
	assert.Contains(t, buf.String(), "boom")
}

func TestSendToleratesNilPublisher(t *testing.T) {
	assert.NotPanics(t, func() {
		Send(context.Background(), nil, testutil.NopLogger(), checkedIn())
	})
	assert.NoError(t, Nop{}.Publish(context.Background(), checkedIn()))
}
