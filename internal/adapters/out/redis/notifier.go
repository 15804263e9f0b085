// Package redis delivers notifications over Redis pub/sub.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultChannelPrefix is prepended to the recipient or to BroadcastChannel.
	DefaultChannelPrefix = "notifications"

	// BroadcastChannel receives notifications without a recipient.
	BroadcastChannel = "broadcast"
)

// Notifier implements ports.Notifier with PUBLISH. Delivery is at most once:
// a message published while nobody is subscribed is lost.
type Notifier struct {
	client redis.UniversalClient
	prefix string
}

func NewNotifier(client redis.UniversalClient, prefix string) *Notifier {
	if prefix == "" {
		prefix = DefaultChannelPrefix
	}
	return &Notifier{client: client, prefix: prefix}
}

// Channel returns the channel a notification is published to.
func (n *Notifier) Channel(notification ports.Notification) string {
	if notification.RecipientID == "" {
		return n.prefix + ":" + BroadcastChannel
	}
	return n.prefix + ":user:" + notification.RecipientID
}

func (n *Notifier) Notify(ctx context.Context, notification ports.Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	channel := n.Channel(notification)
	if err = n.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", channel, err)
	}
	return nil
}
