// Package notify delivers registration and attendance notifications to
// interested parties: logs, a Kafka topic, live dashboards.
package notify

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mcoot/eventease/internal/model"
)

// Publisher delivers notifications
type Publisher interface {
	Publish(ctx context.Context, n model.Notification) error
}

// PublisherFunc adapts a function to the Publisher interface
type PublisherFunc func(ctx context.Context, n model.Notification) error

// Publish calls f(ctx, n)
func (f PublisherFunc) Publish(ctx context.Context, n model.Notification) error {
	return f(ctx, n)
}

// Nop discards every notification
type Nop struct{}

// Publish does nothing
func (Nop) Publish(context.Context, model.Notification) error {
	return nil
}

// LogPublisher writes each notification to a structured logger
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a publisher that logs at info level
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{
		logger: logger.With(slog.String("component", "notify")),
	}
}

// Publish logs the notification
func (p *LogPublisher) Publish(ctx context.Context, n model.Notification) error {
	p.logger.InfoContext(ctx, "notification",
		slog.String("type", string(n.Type)),
		slog.Int("event_id", n.EventID),
		slog.Int("registration_id", n.RegistrationID),
		slog.Int("attendance_id", n.AttendanceID),
	)
	return nil
}

// Fanout publishes to several publishers in order
type Fanout []Publisher

// Publish delivers n to every publisher, even if some fail, and joins their errors
func (f Fanout) Publish(ctx context.Context, n model.Notification) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Send publishes n and logs any failure. Notifications are best effort and
// never fail the operation that produced them.
func Send(ctx context.Context, p Publisher, logger *slog.Logger, n model.Notification) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, n); err != nil {
		logger.WarnContext(ctx, "failed to publish notification",
			slog.String("type", string(n.Type)),
			slog.Int("event_id", n.EventID),
			slog.String("error", err.Error()),
		)
	}
}
