package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"fieldservice/internal/core/domain/model/notification"

	"github.com/go-redis/redis/v8"
)

// DefaultChannelPrefix is followed by the recipient's user id.
const DefaultChannelPrefix = "notifications:user:"

// RedisPublisher publishes each notification on the recipient's pub/sub channel.
type RedisPublisher struct {
	client *redis.Client
	prefix string
}

func NewRedisPublisher(client *redis.Client, prefix string) *RedisPublisher {
	if prefix == "" {
		prefix = DefaultChannelPrefix
	}
	return &RedisPublisher{client: client, prefix: prefix}
}

func (p *RedisPublisher) Channel(userID int64) string {
	return fmt.Sprintf("%s%d", p.prefix, userID)
}

func (p *RedisPublisher) Publish(ctx context.Context, n *notification.Notification) error {
	payload, err := json.Marshal(NewMessage(n))
	if err != nil {
		return fmt.Errorf("encode notification %s: %w", n.ID(), err)
	}
	if err = p.client.Publish(ctx, p.Channel(n.UserID()), payload).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}
