// Package testutil provides in-memory databases and fixtures for tests.
package testutil

import (
	"context"
	"testing"

	"github.com/anonto42/tweeter/backend/internal/models"
	"github.com/anonto42/tweeter/backend/internal/repositories"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory SQLite database with the schema migrated
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// every connection to :memory: is a separate database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, repositories.AutoMigrate(db))
	return db
}

// CreateUser inserts a user with the given username and first name
func CreateUser(t *testing.T, db *gorm.DB, username, firstName string) *models.User {
	t.Helper()
	user := &models.User{Username: username, FirstName: firstName}
	require.NoError(t, repositories.NewPostgresUserRepository(db).CreateUser(context.Background(), user))
	return user
}

// CreateArtist inserts an artist with the given name
func CreateArtist(t *testing.T, db *gorm.DB, name string) *models.Artist {
	t.Helper()
	artist := &models.Artist{Name: name}
	require.NoError(t, repositories.NewPostgresArtistRepository(db).CreateArtist(context.Background(), artist))
	return artist
}

// Follow inserts a user follow edge directly
func Follow(t *testing.T, db *gorm.DB, follower, following *models.User) {
	t.Helper()
	edge := &models.UserFollow{FollowerID: follower.ID, FollowingID: following.ID}
	require.NoError(t, db.Omit("Follower", "Following").Create(edge).Error)
}
