// Package events publishes session-lifecycle audit events on an in-process
// bus. The bus is consumed by a logging subscriber; a single gateway needs
// no broker behind it.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const TopicAuth = "auth-events"

// Event types published on TopicAuth.
const (
	TypeLogin   = "login"
	TypeLogout  = "logout"
	TypeSignup  = "signup"
	TypeApprove = "approve"
)

// AuthEvent records one session-lifecycle action.
type AuthEvent struct {
	Type       string    `json:"type"`
	Identifier string    `json:"identifier,omitempty"`
	Github     string    `json:"github,omitempty"`
	Role       string    `json:"role,omitempty"`
	UserID     int       `json:"userId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Bus wraps a gochannel pub/sub for auth events.
type Bus struct {
	pubSub *gochannel.GoChannel
}

func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		pubSub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: 64,
		}, watermill.NewSlogLogger(logger)),
	}
}

// Publish emits an auth event. Failure to publish is reported but must never
// fail the user action that produced it; callers log and move on.
func (b *Bus) Publish(ev AuthEvent) error {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("events: marshal: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := b.pubSub.Publish(TopicAuth, msg); err != nil {
		return fmt.Errorf("events: publish: %w", err)
	}
	return nil
}

// Subscribe returns the raw event stream for TopicAuth.
func (b *Bus) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return b.pubSub.Subscribe(ctx, TopicAuth)
}

// RunAuditLog consumes auth events and writes them to the audit logger until
// ctx is cancelled.
func (b *Bus) RunAuditLog(ctx context.Context, logger *slog.Logger) error {
	msgs, err := b.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("events: subscribe: %w", err)
	}

	go func() {
		for msg := range msgs {
			var ev AuthEvent
			if err := json.Unmarshal(msg.Payload, &ev); err != nil {
				logger.Warn("audit: bad event payload", "error", err)
				msg.Ack()
				continue
			}
			logger.Info("audit",
				"type", ev.Type,
				"identifier", ev.Identifier,
				"github", ev.Github,
				"role", ev.Role,
				"user_id", ev.UserID,
				"occurred_at", ev.OccurredAt,
			)
			msg.Ack()
		}
	}()
	return nil
}

// Close shuts the bus down; pending subscribers drain and exit.
func (b *Bus) Close() error {
	return b.pubSub.Close()
}
