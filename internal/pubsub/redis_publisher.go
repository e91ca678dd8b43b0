package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/anonto42/tweeter/backend/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"
)

// NotificationChannelPrefix is followed by the owner id to form the channel name
const NotificationChannelPrefix = "notifications:"

// NotificationPublisher broadcasts appended notifications to live subscribers
type NotificationPublisher interface {
	PublishNotification(ctx context.Context, notification *models.Notification) error
	Close() error
}

type redisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a new Redis publisher
func NewRedisPublisher(ctx context.Context, redisURL string) (NotificationPublisher, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	// maint_notifications is not available on Redis 7
	opts.MaintNotificationsConfig = &maintnotifications.Config{
		Mode: maintnotifications.ModeDisabled,
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisPublisherFromClient(client), nil
}

// NewRedisPublisherFromClient wraps an existing client
func NewRedisPublisherFromClient(client *redis.Client) NotificationPublisher {
	return &redisPublisher{client: client}
}

// NotificationEvent is the payload published for each notification
type NotificationEvent struct {
	ID        uint   `json:"id"`
	Owner     uint   `json:"owner"`
	Type      string `json:"type"`
	ObjectID  string `json:"object_id"`
	CreatedAt int64  `json:"created_at"`
}

// ChannelFor returns the channel a user's notifications are published on
func ChannelFor(ownerID uint) string {
	return NotificationChannelPrefix + strconv.FormatUint(uint64(ownerID), 10)
}

func (p *redisPublisher) PublishNotification(ctx context.Context, notification *models.Notification) error {
	payload, err := json.Marshal(NotificationEvent{
		ID:        notification.ID,
		Owner:     notification.OwnerID,
		Type:      notification.Type,
		ObjectID:  notification.ObjectID,
		CreatedAt: notification.CreatedAt.Unix(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.client.Publish(ctx, ChannelFor(notification.OwnerID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish to Redis: %w", err)
	}
	return nil
}

func (p *redisPublisher) Close() error {
	return p.client.Close()
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops every event, used when Redis is not configured
func NewNoopPublisher() NotificationPublisher {
	return noopPublisher{}
}

func (noopPublisher) PublishNotification(context.Context, *models.Notification) error { return nil }

func (noopPublisher) Close() error { return nil }
