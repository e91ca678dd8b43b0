package pubsub

import (
	"context"
	"testing"

	"github.com/anonto42/tweeter/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestChannelFor(t *testing.T) {
	assert.Equal(t, "notifications:42", ChannelFor(42))
	assert.Equal(t, "notifications:0", ChannelFor(0))
}

func TestNoopPublisher(t *testing.T) {
	p := NewNoopPublisher()
	assert.NoError(t, p.PublishNotification(context.Background(), &models.Notification{OwnerID: 1}))
	assert.NoError(t, p.Close())
}

func TestNewRedisPublisherInvalidURL(t *testing.T) {
	_, err := NewRedisPublisher(context.Background(), "not a url")
	assert.ErrorContains(t, err, "failed to parse Redis URL")
}
