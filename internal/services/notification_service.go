package services

import (
	"context"
	"fmt"
	"time"

	"github.com/anonto42/tweeter/backend/internal/models"
	"github.com/anonto42/tweeter/backend/internal/pubsub"
	"github.com/anonto42/tweeter/backend/internal/repositories"
	"github.com/anonto42/tweeter/backend/pkg/metrics"
	"github.com/sirupsen/logrus"
)

// NotificationService appends notifications to the sink and fans them out to live subscribers
type NotificationService struct {
	notificationRepository repositories.NotificationRepository
	publisher              pubsub.NotificationPublisher
	metrics                *metrics.Metrics
	log                    *logrus.Entry
}

// NewNotificationService creates a NotificationService. publisher and m may be nil.
func NewNotificationService(repo repositories.NotificationRepository, publisher pubsub.NotificationPublisher, m *metrics.Metrics, log *logrus.Entry) *NotificationService {
	if publisher == nil {
		publisher = pubsub.NewNoopPublisher()
	}
	return &NotificationService{
		notificationRepository: repo,
		publisher:              publisher,
		metrics:                m,
		log:                    log,
	}
}

// Notify appends a notification. Publishing happens after the write and never fails the call.
func (s *NotificationService) Notify(ctx context.Context, notification *models.Notification) error {
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	if err := s.notificationRepository.CreateNotification(ctx, notification); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}
	s.metrics.RecordNotification(notification.Type)

	if err := s.publisher.PublishNotification(ctx, notification); err != nil {
		s.metrics.RecordPublishFailure()
		s.log.WithError(err).WithFields(logrus.Fields{
			"notification_id": notification.ID,
			"owner_id":        notification.OwnerID,
		}).Warn("failed to publish notification")
	}
	return nil
}

// ListForOwner returns the actor's notifications, newest first
func (s *NotificationService) ListForOwner(ctx context.Context, actorID uint) ([]models.Notification, error) {
	if actorID == 0 {
		return nil, ErrUnauthenticated
	}
	return s.notificationRepository.GetByOwnerID(ctx, actorID)
}
