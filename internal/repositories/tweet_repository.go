package repositories

import (
	"context"

	"github.com/anonto42/tweeter/backend/internal/models"
	"gorm.io/gorm"
)

// TweetRepository defines the interface for tweet data operations
type TweetRepository interface {
	CreateTweet(ctx context.Context, tweet *models.Tweet) error
	GetTweetByID(ctx context.Context, id uint) (*models.Tweet, error)
	GetTweetsByOwnerID(ctx context.Context, ownerID uint) ([]models.Tweet, error)
	UpdateTweetContent(ctx context.Context, tweet *models.Tweet) error
}

type postgresTweetRepository struct {
	db *gorm.DB
}

func NewPostgresTweetRepository(db *gorm.DB) TweetRepository {
	return &postgresTweetRepository{db: db}
}

func (r *postgresTweetRepository) CreateTweet(ctx context.Context, tweet *models.Tweet) error {
	return r.db.WithContext(ctx).Omit("Owner").Create(tweet).Error
}

func (r *postgresTweetRepository) GetTweetByID(ctx context.Context, id uint) (*models.Tweet, error) {
	var tweet models.Tweet
	if err := r.db.WithContext(ctx).First(&tweet, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &tweet, nil
}

func (r *postgresTweetRepository) GetTweetsByOwnerID(ctx context.Context, ownerID uint) ([]models.Tweet, error) {
	tweets := []models.Tweet{}
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).
		Order("created_at DESC").Order("id DESC").
		Find(&tweets).Error
	return tweets, err
}

// UpdateTweetContent writes only the content column. The owner column is create-only.
func (r *postgresTweetRepository) UpdateTweetContent(ctx context.Context, tweet *models.Tweet) error {
	res := r.db.WithContext(ctx).Model(tweet).Select("content", "updated_at").Updates(tweet)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
