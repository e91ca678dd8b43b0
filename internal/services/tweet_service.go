package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/anonto42/tweeter/backend/internal/models"
	"github.com/anonto42/tweeter/backend/internal/repositories"
)

// TweetService creates and edits tweets. The owner is fixed at creation.
type TweetService struct {
	tweetRepository repositories.TweetRepository
	userRepository  repositories.UserRepository
}

func NewTweetService(tweetRepo repositories.TweetRepository, userRepo repositories.UserRepository) *TweetService {
	return &TweetService{tweetRepository: tweetRepo, userRepository: userRepo}
}

func (s *TweetService) Create(ctx context.Context, actorID uint, content string) (*models.Tweet, error) {
	if actorID == 0 {
		return nil, ErrUnauthenticated
	}
	tweet := &models.Tweet{OwnerID: actorID, Content: content}
	if err := s.tweetRepository.CreateTweet(ctx, tweet); err != nil {
		return nil, fmt.Errorf("failed to create tweet: %w", err)
	}
	return tweet, nil
}

func (s *TweetService) Get(ctx context.Context, id uint) (*models.Tweet, error) {
	tweet, err := s.tweetRepository.GetTweetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTweetNotFound
		}
		return nil, err
	}
	return tweet, nil
}

// ListByUsername returns the named user's tweets, newest first
func (s *TweetService) ListByUsername(ctx context.Context, username string) ([]models.Tweet, error) {
	user, err := s.userRepository.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.tweetRepository.GetTweetsByOwnerID(ctx, user.ID)
}

// UpdateContent edits the tweet's content. Only the owner may edit.
func (s *TweetService) UpdateContent(ctx context.Context, actorID, id uint, content string) (*models.Tweet, error) {
	if actorID == 0 {
		return nil, ErrUnauthenticated
	}
	tweet, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if tweet.OwnerID != actorID {
		return nil, ErrForbidden
	}

	tweet.Content = content
	if err := s.tweetRepository.UpdateTweetContent(ctx, tweet); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTweetNotFound
		}
		return nil, fmt.Errorf("failed to update tweet: %w", err)
	}
	return tweet, nil
}
