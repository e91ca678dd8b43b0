package models

// UserFollow is a directed follow edge between two users.
// The composite primary key keeps at most one edge per pair.
type UserFollow struct {
	FollowerID  uint `json:"follower_id" gorm:"primaryKey;autoIncrement:false"`
	FollowingID uint `json:"following_id" gorm:"primaryKey;autoIncrement:false;index;check:chk_user_follows_not_self,follower_id <> following_id"`

	Follower  User `json:"-" gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	Following User `json:"-" gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE"`
}

// ArtistFollow is a follow edge from a user to an artist
type ArtistFollow struct {
	UserID   uint `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	ArtistID uint `json:"artist_id" gorm:"primaryKey;autoIncrement:false;index"`

	User   User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Artist Artist `json:"-" gorm:"foreignKey:ArtistID;constraint:OnDelete:CASCADE"`
}
