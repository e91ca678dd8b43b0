package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/tweeter/backend/internal/models"
	"github.com/anonto42/tweeter/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoNotificationRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create allocates sequential id", func(mt *mtest.T) {
		repo := repositories.NewMongoNotificationRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{{Key: "_id", Value: "notifications"}, {Key: "seq", Value: int64(7)}}}),
			mtest.CreateSuccessResponse(),
		)

		n := &models.Notification{OwnerID: 2, Type: models.NotificationTypeFollow, ObjectID: "alice"}
		require.NoError(t, repo.CreateNotification(context.Background(), n))
		assert.Equal(t, uint(7), n.ID)
		assert.False(t, n.CreatedAt.IsZero())
	})

	mt.Run("list by owner", func(mt *mtest.T) {
		repo := repositories.NewMongoNotificationRepository(mt.DB)
		created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		ns := mt.DB.Name() + ".notifications"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{
				{Key: "id", Value: int64(3)},
				{Key: "owner_id", Value: int64(2)},
				{Key: "type", Value: "f"},
				{Key: "object_id", Value: "carol"},
				{Key: "created_at", Value: created},
			},
		))

		notifications, err := repo.GetByOwnerID(context.Background(), 2)
		require.NoError(t, err)
		require.Len(t, notifications, 1)
		assert.Equal(t, uint(3), notifications[0].ID)
		assert.Equal(t, uint(2), notifications[0].OwnerID)
		assert.Equal(t, "carol", notifications[0].ObjectID)
		assert.True(t, created.Equal(notifications[0].CreatedAt))
	})

	mt.Run("counter failure", func(mt *mtest.T) {
		repo := repositories.NewMongoNotificationRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 11600, Message: "interrupted"}))

		err := repo.CreateNotification(context.Background(), &models.Notification{OwnerID: 2})
		assert.ErrorContains(t, err, "failed to allocate notification id")
	})
}
