package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/anonto42/tweeter/backend/internal/models"
	"gorm.io/gorm"
)

// searchOrderColumns maps the accepted ordering fields to columns
var searchOrderColumns = map[string]string{
	"id":          "users.id",
	"username":    "users.username",
	"first_name":  "users.first_name",
	"verify":      "users.verify",
	"date_joined": "users.date_joined",
}

// IsSearchOrdering reports whether ordering (optionally "-" prefixed) is an accepted search ordering.
func IsSearchOrdering(ordering string) bool {
	_, ok := searchOrderColumns[strings.TrimPrefix(ordering, "-")]
	return ok
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id uint) error
	SearchUsers(ctx context.Context, actorID uint, filter models.UserSearchFilter) ([]models.UserWithFollowing, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser creates a new user in PostgreSQL
func (r *PostgresUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return translateError(r.db.WithContext(ctx).Create(user).Error)
}

// GetUserByID retrieves a user by ID from PostgreSQL
func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by its unique username
func (r *PostgresUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// GetUserByFirebaseUID retrieves a user by Firebase UID from PostgreSQL
func (r *PostgresUserRepository) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("firebase_uid = ?", firebaseUID).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// UpdateUser updates an existing user in PostgreSQL
func (r *PostgresUserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	return translateError(r.db.WithContext(ctx).Save(user).Error)
}

// DeleteUser deletes a user by ID. Follow edges, notifications and tweets cascade.
func (r *PostgresUserRepository) DeleteUser(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SearchUsers returns every user matching filter. With a non-zero actorID each row carries
// whether the actor follows it, and followed users sort first.
func (r *PostgresUserRepository) SearchUsers(ctx context.Context, actorID uint, filter models.UserSearchFilter) ([]models.UserWithFollowing, error) {
	q := r.db.WithContext(ctx).Model(&models.User{})

	if filter.FirstNameContains != "" {
		q = q.Where(`LOWER(users.first_name) LIKE LOWER(?) ESCAPE '\'`, containsPattern(filter.FirstNameContains))
	}
	if filter.UsernameContains != "" {
		q = q.Where(`LOWER(users.username) LIKE LOWER(?) ESCAPE '\'`, containsPattern(filter.UsernameContains))
	}

	if actorID != 0 {
		q = q.Select(
			"users.*, EXISTS (SELECT 1 FROM user_follows WHERE user_follows.follower_id = ? AND user_follows.following_id = users.id) AS following",
			actorID,
		).Order("following DESC")
	}

	if filter.Ordering != "" {
		column, ok := searchOrderColumns[strings.TrimPrefix(filter.Ordering, "-")]
		if !ok {
			return nil, fmt.Errorf("unsupported ordering %q", filter.Ordering)
		}
		if strings.HasPrefix(filter.Ordering, "-") {
			column += " DESC"
		}
		q = q.Order(column)
	}
	q = q.Order("users.id")

	var rows []models.UserWithFollowing
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// containsPattern builds a LIKE pattern matching s anywhere, with wildcards in s escaped.
func containsPattern(s string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + escaped + "%"
}
