package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/tweeter/backend/internal/models"
	"github.com/anonto42/tweeter/backend/internal/repositories"
	"github.com/anonto42/tweeter/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTweetOwnerIsCreateOnly(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewPostgresTweetRepository(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice", "Alice")
	bob := testutil.CreateUser(t, db, "bob", "Bob")

	tweet := &models.Tweet{OwnerID: alice.ID, Content: "first"}
	require.NoError(t, repo.CreateTweet(ctx, tweet))

	tweet.OwnerID = bob.ID
	tweet.Content = "edited"
	require.NoError(t, repo.UpdateTweetContent(ctx, tweet))

	stored, err := repo.GetTweetByID(ctx, tweet.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, stored.OwnerID)
	assert.Equal(t, "edited", stored.Content)
}

func TestGetTweetsByOwnerNewestFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewPostgresTweetRepository(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice", "Alice")
	bob := testutil.CreateUser(t, db, "bob", "Bob")

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, content := range []string{"one", "two", "three"} {
		tweet := &models.Tweet{OwnerID: alice.ID, Content: content, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, repo.CreateTweet(ctx, tweet))
	}
	require.NoError(t, repo.CreateTweet(ctx, &models.Tweet{OwnerID: bob.ID, Content: "other"}))

	tweets, err := repo.GetTweetsByOwnerID(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, tweets, 3)
	assert.Equal(t, "three", tweets[0].Content)
	assert.Equal(t, "one", tweets[2].Content)
}

func TestTweetNotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewPostgresTweetRepository(db)
	ctx := context.Background()

	_, err := repo.GetTweetByID(ctx, 42)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	err = repo.UpdateTweetContent(ctx, &models.Tweet{ID: 42, Content: "ghost"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
