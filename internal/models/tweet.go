package models

import "time"

// Tweet is a short post. OwnerID is written on create only and cascades with the owner.
type Tweet struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OwnerID   uint      `json:"owner" gorm:"<-:create;not null;index"`
	Content   string    `json:"content" gorm:"size:280;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Owner User `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}

// CreateTweetRequest defines the request body for creating a new tweet
type CreateTweetRequest struct {
	Content string `json:"content" validate:"required,min=1,max=280"`
}

// UpdateTweetRequest defines the request body for editing a tweet. The owner is not editable.
type UpdateTweetRequest struct {
	Content string `json:"content" validate:"required,min=1,max=280"`
}
