package repositories

import (
	"context"

	"github.com/anonto42/tweeter/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines the interface for follow edge operations.
// User→user and user→artist edges are kept in separate tables.
type FollowRepository interface {
	CreateFollow(ctx context.Context, followerID, followingID uint) (bool, error)
	DeleteFollow(ctx context.Context, followerID, followingID uint) (bool, error)
	IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error)
	GetFollowers(ctx context.Context, userID uint) ([]models.User, error)
	GetFollowing(ctx context.Context, userID uint) ([]models.User, error)
	GetFollowingIDsAmong(ctx context.Context, followerID uint, candidateIDs []uint) (map[uint]bool, error)

	CreateArtistFollow(ctx context.Context, userID, artistID uint) (bool, error)
	DeleteArtistFollow(ctx context.Context, userID, artistID uint) (bool, error)
	IsFollowingArtist(ctx context.Context, userID, artistID uint) (bool, error)
	GetFollowedArtists(ctx context.Context, userID uint) ([]models.Artist, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// CreateFollow inserts the edge and reports whether it was new.
// An existing edge is left alone.
func (r *PostgresFollowRepository) CreateFollow(ctx context.Context, followerID, followingID uint) (bool, error) {
	follow := &models.UserFollow{FollowerID: followerID, FollowingID: followingID}
	res := r.db.WithContext(ctx).Omit(clause.Associations).Clauses(clause.OnConflict{DoNothing: true}).Create(follow)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteFollow removes the edge and reports whether one existed.
func (r *PostgresFollowRepository) DeleteFollow(ctx context.Context, followerID, followingID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.UserFollow{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *PostgresFollowRepository) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.UserFollow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetFollowers returns the users holding an edge towards userID
func (r *PostgresFollowRepository) GetFollowers(ctx context.Context, userID uint) ([]models.User, error) {
	db := r.db.WithContext(ctx)
	users := []models.User{}
	err := db.Where("id IN (?)",
		db.Model(&models.UserFollow{}).Select("follower_id").Where("following_id = ?", userID),
	).Order("id").Find(&users).Error
	return users, err
}

// GetFollowing returns the users userID holds an edge towards
func (r *PostgresFollowRepository) GetFollowing(ctx context.Context, userID uint) ([]models.User, error) {
	db := r.db.WithContext(ctx)
	users := []models.User{}
	err := db.Where("id IN (?)",
		db.Model(&models.UserFollow{}).Select("following_id").Where("follower_id = ?", userID),
	).Order("id").Find(&users).Error
	return users, err
}

// GetFollowingIDsAmong returns the subset of candidateIDs that followerID follows
func (r *PostgresFollowRepository) GetFollowingIDsAmong(ctx context.Context, followerID uint, candidateIDs []uint) (map[uint]bool, error) {
	set := make(map[uint]bool)
	if followerID == 0 || len(candidateIDs) == 0 {
		return set, nil
	}

	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.UserFollow{}).
		Where("follower_id = ? AND following_id IN ?", followerID, candidateIDs).
		Pluck("following_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func (r *PostgresFollowRepository) CreateArtistFollow(ctx context.Context, userID, artistID uint) (bool, error) {
	follow := &models.ArtistFollow{UserID: userID, ArtistID: artistID}
	res := r.db.WithContext(ctx).Omit(clause.Associations).Clauses(clause.OnConflict{DoNothing: true}).Create(follow)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *PostgresFollowRepository) DeleteArtistFollow(ctx context.Context, userID, artistID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND artist_id = ?", userID, artistID).
		Delete(&models.ArtistFollow{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *PostgresFollowRepository) IsFollowingArtist(ctx context.Context, userID, artistID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ArtistFollow{}).
		Where("user_id = ? AND artist_id = ?", userID, artistID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetFollowedArtists returns the artists userID follows
func (r *PostgresFollowRepository) GetFollowedArtists(ctx context.Context, userID uint) ([]models.Artist, error) {
	db := r.db.WithContext(ctx)
	artists := []models.Artist{}
	err := db.Where("id IN (?)",
		db.Model(&models.ArtistFollow{}).Select("artist_id").Where("user_id = ?", userID),
	).Order("id").Find(&artists).Error
	return artists, err
}
