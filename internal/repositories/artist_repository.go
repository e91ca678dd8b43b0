package repositories

import (
	"context"

	"github.com/anonto42/tweeter/backend/internal/models"
	"gorm.io/gorm"
)

// ArtistRepository defines the interface for artist lookups
type ArtistRepository interface {
	CreateArtist(ctx context.Context, artist *models.Artist) error
	GetArtistByID(ctx context.Context, id uint) (*models.Artist, error)
}

type postgresArtistRepository struct {
	db *gorm.DB
}

func NewPostgresArtistRepository(db *gorm.DB) ArtistRepository {
	return &postgresArtistRepository{db: db}
}

func (r *postgresArtistRepository) CreateArtist(ctx context.Context, artist *models.Artist) error {
	return r.db.WithContext(ctx).Create(artist).Error
}

func (r *postgresArtistRepository) GetArtistByID(ctx context.Context, id uint) (*models.Artist, error) {
	var artist models.Artist
	if err := r.db.WithContext(ctx).First(&artist, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &artist, nil
}
