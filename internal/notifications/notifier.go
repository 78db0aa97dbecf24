// Package notifications provides real-time change propagation for the
// operator dashboard.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime/debug"

	"github.com/redis/go-redis/v9"
)

// InquiryEventsChannel is the Redis channel carrying inquiry change events.
const InquiryEventsChannel = "inquiries:events"

// Event types mirroring row-level database changes.
const (
	EventInsert = "INSERT"
	EventUpdate = "UPDATE"
	EventDelete = "DELETE"
)

// InquiryEvent describes a change to an inquiry row. Dashboards use these to
// refresh badge counts and lists without polling.
type InquiryEvent struct {
	Type      string `json:"type"`
	InquiryID uint   `json:"inquiry_id"`
	Status    string `json:"status,omitempty"`
}

// Notifier publishes inquiry change events into Redis.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishInquiryEvent sends an inquiry change event to the events channel.
// It is a no-op when Redis is unavailable.
func (n *Notifier) PublishInquiryEvent(ctx context.Context, event InquiryEvent) error {
	if n.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal inquiry event: %w", err)
	}
	return n.rdb.Publish(ctx, InquiryEventsChannel, string(payload)).Err()
}

// StartInquirySubscriber subscribes to the inquiry events channel and calls
// onMessage for each incoming payload.
func (n *Notifier) StartInquirySubscriber(
	ctx context.Context, onMessage func(payload string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.Subscribe(ctx, InquiryEventsChannel)
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in InquirySubscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Payload)
				}()
			}
		}
	}()

	return nil
}
