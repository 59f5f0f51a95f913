// Package events publishes complaint lifecycle events to Redis pub/sub.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	infralogger "github.com/Sahil-memane/urban-resource-harmony-sub000/infrastructure/logger"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/domain"
)

const (
	// DefaultChannel receives COMPLAINT_CLASSIFIED events.
	DefaultChannel        = "complaints:classified"
	defaultPublishTimeout = 2 * time.Second
)

// Publisher sends complaint events. A publisher without a Redis client is a
// no-op, so the service runs without Redis.
type Publisher struct {
	client  *redis.Client
	channel string
	timeout time.Duration
	logger  infralogger.Logger
	tracer  trace.Tracer
	now     func() time.Time
}

// NewPublisher creates a publisher on channel (DefaultChannel when empty).
func NewPublisher(client *redis.Client, channel string, log infralogger.Logger) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}
	if log == nil {
		log = infralogger.NewNop()
	}
	return &Publisher{
		client:  client,
		channel: channel,
		timeout: defaultPublishTimeout,
		logger:  log,
		tracer:  otel.Tracer("complaint-events"),
		now:     time.Now,
	}
}

// Enabled reports whether events are actually sent.
func (p *Publisher) Enabled() bool {
	return p != nil && p.client != nil
}

// PublishClassified announces that c has been classified.
func (p *Publisher) PublishClassified(ctx context.Context, c *domain.Complaint) error {
	if !p.Enabled() {
		return nil
	}

	ctx, span := p.tracer.Start(ctx, "events.publish",
		trace.WithAttributes(
			attribute.String("complaint_id", c.ID),
			attribute.String("priority", c.Priority.String()),
			attribute.String("channel", p.channel),
		))
	defer span.End()

	event := domain.ComplaintEvent{
		EventID:     uuid.NewString(),
		EventType:   domain.EventComplaintClassified,
		ComplaintID: c.ID,
		UserID:      c.UserID,
		Category:    c.Category,
		Priority:    c.Priority,
		Stage:       c.PriorityStage,
		Timestamp:   p.now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err = p.client.Publish(pubCtx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}

	p.logger.Debug("Published complaint event",
		infralogger.String("complaint_id", c.ID),
		infralogger.String("event_id", event.EventID),
		infralogger.String("channel", p.channel),
	)
	return nil
}
