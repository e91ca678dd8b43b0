package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/anonto42/tweeter/backend/internal/models"
	"github.com/anonto42/tweeter/backend/internal/repositories"
	"github.com/anonto42/tweeter/backend/pkg/metrics"
)

// Notifier appends a notification to the sink
type Notifier interface {
	Notify(ctx context.Context, notification *models.Notification) error
}

// FollowService toggles follow edges. Each call flips the edge; only the
// user→user create branch emits a notification.
type FollowService struct {
	userRepository   repositories.UserRepository
	artistRepository repositories.ArtistRepository
	followRepository repositories.FollowRepository
	notifier         Notifier
	metrics          *metrics.Metrics
}

func NewFollowService(
	userRepo repositories.UserRepository,
	artistRepo repositories.ArtistRepository,
	followRepo repositories.FollowRepository,
	notifier Notifier,
	m *metrics.Metrics,
) *FollowService {
	return &FollowService{
		userRepository:   userRepo,
		artistRepository: artistRepo,
		followRepository: followRepo,
		notifier:         notifier,
		metrics:          m,
	}
}

func (s *FollowService) actor(ctx context.Context, actorID uint) (*models.User, error) {
	if actorID == 0 {
		return nil, ErrUnauthenticated
	}
	actor, err := s.userRepository.GetUserByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return actor, nil
}

// ToggleUserFollow follows the named user if the actor does not follow them yet, and
// unfollows otherwise. It returns the target with its new follow status.
func (s *FollowService) ToggleUserFollow(ctx context.Context, actorID uint, username string) (*models.UserCompact, error) {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	target, err := s.userRepository.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if target.ID == actor.ID {
		return nil, ErrFollowSelf
	}

	following, err := s.followRepository.IsFollowing(ctx, actor.ID, target.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check follow status: %w", err)
	}

	if following {
		if _, err := s.followRepository.DeleteFollow(ctx, actor.ID, target.ID); err != nil {
			return nil, fmt.Errorf("failed to unfollow: %w", err)
		}
		s.metrics.RecordFollowToggle("user", "unfollow")
		compact := target.ToCompact(false)
		return &compact, nil
	}

	created, err := s.followRepository.CreateFollow(ctx, actor.ID, target.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to follow: %w", err)
	}
	// A concurrent request may have created the edge first; it owns the notification.
	if created {
		s.metrics.RecordFollowToggle("user", "follow")
		notification := &models.Notification{
			OwnerID:  target.ID,
			Type:     models.NotificationTypeFollow,
			ObjectID: actor.Username,
		}
		if err := s.notifier.Notify(ctx, notification); err != nil {
			return nil, err
		}
	}

	compact := target.ToCompact(true)
	return &compact, nil
}

// ToggleArtistFollow flips the actor's follow edge towards the artist
func (s *FollowService) ToggleArtistFollow(ctx context.Context, actorID, artistID uint) (*models.Artist, error) {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	artist, err := s.artistRepository.GetArtistByID(ctx, artistID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}

	following, err := s.followRepository.IsFollowingArtist(ctx, actor.ID, artist.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check artist follow status: %w", err)
	}

	if following {
		if _, err := s.followRepository.DeleteArtistFollow(ctx, actor.ID, artist.ID); err != nil {
			return nil, fmt.Errorf("failed to unfollow artist: %w", err)
		}
		s.metrics.RecordFollowToggle("artist", "unfollow")
		return artist, nil
	}

	if _, err := s.followRepository.CreateArtistFollow(ctx, actor.ID, artist.ID); err != nil {
		return nil, fmt.Errorf("failed to follow artist: %w", err)
	}
	s.metrics.RecordFollowToggle("artist", "follow")
	return artist, nil
}
