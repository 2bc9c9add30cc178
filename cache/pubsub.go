package cache

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// NotificationBus fans notifications out to every server instance holding a
// websocket for the recipient.
type NotificationBus struct {
	client *redis.Client
}

func NewNotificationBus(client *redis.Client) *NotificationBus {
	return &NotificationBus{client: client}
}

func notificationChannel(userID uuid.UUID) string {
	return fmt.Sprintf("notifications:%s", userID)
}

func (b *NotificationBus) Publish(ctx context.Context, userID uuid.UUID, payload []byte) error {
	return b.client.Publish(ctx, notificationChannel(userID), payload).Err()
}

// Subscribe listens for userID's notifications until ctx is done. The
// returned channel is closed when the subscription ends.
func (b *NotificationBus) Subscribe(ctx context.Context, userID uuid.UUID) <-chan []byte {
	pubsub := b.client.Subscribe(ctx, notificationChannel(userID))
	out := make(chan []byte)
	go func() {
		defer close(out)
		defer pubsub.Close()
		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
