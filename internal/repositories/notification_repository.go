package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/anonto42/tweeter/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NotificationRepository is the append-only notification sink
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	GetByOwnerID(ctx context.Context, ownerID uint) ([]models.Notification, error)
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(notification).Error
}

func (r *postgresNotificationRepository) GetByOwnerID(ctx context.Context, ownerID uint) ([]models.Notification, error) {
	notifications := []models.Notification{}
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).
		Order("created_at DESC").Order("id DESC").
		Find(&notifications).Error
	return notifications, err
}

const (
	notificationsCollection = "notifications"
	countersCollection      = "counters"
)

// MongoNotificationRepository stores notifications in MongoDB.
// Numeric ids come from a counter document so both backends expose the same shape.
type MongoNotificationRepository struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

// NewMongoNotificationRepository creates a new MongoNotificationRepository
func NewMongoNotificationRepository(db *mongo.Database) *MongoNotificationRepository {
	return &MongoNotificationRepository{
		collection: db.Collection(notificationsCollection),
		counters:   db.Collection(countersCollection),
	}
}

// EnsureIndexes creates the owner/created_at index used by GetByOwnerID
func (r *MongoNotificationRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create notification index: %w", err)
	}
	return nil
}

func (r *MongoNotificationRepository) nextID(ctx context.Context) (uint, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": notificationsCollection},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate notification id: %w", err)
	}
	return uint(counter.Seq), nil
}

// CreateNotification appends a notification document
func (r *MongoNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	id, err := r.nextID(ctx)
	if err != nil {
		return err
	}
	notification.ID = id
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	_, err = r.collection.InsertOne(ctx, notification)
	return err
}

// GetByOwnerID lists the owner's notifications, newest first
func (r *MongoNotificationRepository) GetByOwnerID(ctx context.Context, ownerID uint) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "id", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}
