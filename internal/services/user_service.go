package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/anonto42/tweeter/backend/internal/models"
	"github.com/anonto42/tweeter/backend/internal/repositories"
	"github.com/anonto42/tweeter/backend/internal/timezones"
)

// UserService serves user lookups, search, listings and the actor's own profile
type UserService struct {
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
}

func NewUserService(userRepo repositories.UserRepository, followRepo repositories.FollowRepository) *UserService {
	return &UserService{userRepository: userRepo, followRepository: followRepo}
}

// Search lists users matching filter. actorID 0 means anonymous: nothing is marked as
// followed and the order ignores follow status. Otherwise followed users come first.
func (s *UserService) Search(ctx context.Context, actorID uint, filter models.UserSearchFilter) ([]models.UserCompact, error) {
	if filter.Ordering != "" && !repositories.IsSearchOrdering(filter.Ordering) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOrdering, filter.Ordering)
	}

	rows, err := s.userRepository.SearchUsers(ctx, actorID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	users := make([]models.UserCompact, len(rows))
	for i := range rows {
		users[i] = rows[i].User.ToCompact(actorID != 0 && rows[i].Following)
	}
	return users, nil
}

// GetByUsername returns the full user record
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepository.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetProfile returns the actor's own record
func (s *UserService) GetProfile(ctx context.Context, actorID uint) (*models.User, error) {
	if actorID == 0 {
		return nil, ErrUnauthenticated
	}
	user, err := s.userRepository.GetUserByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies the non-nil fields of req to the actor's record
func (s *UserService) UpdateProfile(ctx context.Context, actorID uint, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetProfile(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil && *req.Username != user.Username {
		existing, err := s.userRepository.GetUserByUsername(ctx, *req.Username)
		switch {
		case err == nil && existing.ID != user.ID:
			return nil, ErrUsernameTaken
		case err != nil && !errors.Is(err, repositories.ErrNotFound):
			return nil, err
		}
		user.Username = *req.Username
	}
	if req.Timezone != nil && *req.Timezone != "" && !timezones.Valid(*req.Timezone) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimezone, *req.Timezone)
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Timezone != nil {
		user.Timezone = *req.Timezone
	}

	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// ListFollowings returns the users the named user follows
func (s *UserService) ListFollowings(ctx context.Context, actorID uint, username string) ([]models.UserCompact, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	users, err := s.followRepository.GetFollowing(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list followings: %w", err)
	}
	return s.annotate(ctx, actorID, users)
}

// ListFollowers returns the users following the named user
func (s *UserService) ListFollowers(ctx context.Context, actorID uint, username string) ([]models.UserCompact, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	users, err := s.followRepository.GetFollowers(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list followers: %w", err)
	}
	return s.annotate(ctx, actorID, users)
}

// ListFollowedArtists returns the artists the named user follows
func (s *UserService) ListFollowedArtists(ctx context.Context, username string) ([]models.Artist, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	artists, err := s.followRepository.GetFollowedArtists(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list followed artists: %w", err)
	}
	return artists, nil
}

// annotate marks which of users the actor follows
func (s *UserService) annotate(ctx context.Context, actorID uint, users []models.User) ([]models.UserCompact, error) {
	followed := map[uint]bool{}
	if actorID != 0 && len(users) > 0 {
		ids := make([]uint, len(users))
		for i := range users {
			ids[i] = users[i].ID
		}
		var err error
		followed, err = s.followRepository.GetFollowingIDsAmong(ctx, actorID, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve follow status: %w", err)
		}
	}

	compact := make([]models.UserCompact, len(users))
	for i := range users {
		compact[i] = users[i].ToCompact(followed[users[i].ID])
	}
	return compact, nil
}
