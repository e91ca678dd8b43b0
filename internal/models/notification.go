package models

import "time"

// NotificationTypeFollow marks a "user X followed you" notification
const NotificationTypeFollow = "f"

// Notification is an append-only event addressed to its owner.
type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey" bson:"id"`
	OwnerID   uint      `json:"owner" gorm:"not null;index" bson:"owner_id"`
	Type      string    `json:"type" gorm:"size:1;not null" bson:"type"`
	ObjectID  string    `json:"object_id" gorm:"size:150" bson:"object_id"` // username for follows
	CreatedAt time.Time `json:"created_at" gorm:"index" bson:"created_at"`

	Owner User `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" bson:"-"`
}
