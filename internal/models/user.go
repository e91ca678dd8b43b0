package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is a member of the network. Follow relations hang off it as explicit edge tables.
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Username    string    `json:"username" gorm:"size:150;not null;uniqueIndex"`
	FirstName   string    `json:"first_name" gorm:"size:150"`
	LastName    string    `json:"last_name" gorm:"size:150"`
	Email       string    `json:"email" gorm:"size:254"`
	Bio         string    `json:"bio"`
	Timezone    string    `json:"timezone" gorm:"size:64"`
	Verify      bool      `json:"verify" gorm:"not null;default:false"`
	DateJoined  time.Time `json:"date_joined" gorm:"autoCreateTime"`
	FirebaseUID *string   `json:"-" gorm:"size:128;uniqueIndex"` // Link to Firebase User UID
}

// UserCompact is the representation used in listings and follow responses
type UserCompact struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	Verify    bool   `json:"verify"`
	Following bool   `json:"following"`
}

// UserWithFollowing is a search row: the user plus whether the actor follows them.
type UserWithFollowing struct {
	User
	Following bool
}

// ToCompact builds the compact representation of u.
func (u *User) ToCompact(following bool) UserCompact {
	return UserCompact{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		Verify:    u.Verify,
		Following: following,
	}
}

// UserSearchFilter narrows a user search. Empty strings mean no filter.
type UserSearchFilter struct {
	FirstNameContains string
	UsernameContains  string
	// Ordering is a field name from the search ordering set, "-" prefixed for descending.
	Ordering string
}

// UpdateProfileRequest is the PATCH body for the current user's profile. Nil fields are left untouched.
type UpdateProfileRequest struct {
	Username  *string `json:"username" validate:"omitempty,min=1,max=150,username"`
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Bio       *string `json:"bio" validate:"omitempty,max=500"`
	Timezone  *string `json:"timezone" validate:"omitempty,timezone"`
}

// ReplaceProfileRequest is the PUT body for the current user's profile.
type ReplaceProfileRequest struct {
	Username  string `json:"username" validate:"required,min=1,max=150,username"`
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"omitempty,max=150"`
	Email     string `json:"email" validate:"omitempty,email"`
	Bio       string `json:"bio" validate:"omitempty,max=500"`
	Timezone  string `json:"timezone" validate:"omitempty,timezone"`
}

// ToUpdate converts a full replacement into an update touching every editable field.
func (r *ReplaceProfileRequest) ToUpdate() UpdateProfileRequest {
	return UpdateProfileRequest{
		Username:  &r.Username,
		FirstName: &r.FirstName,
		LastName:  &r.LastName,
		Email:     &r.Email,
		Bio:       &r.Bio,
		Timezone:  &r.Timezone,
	}
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
