package models

import (
	"time"
)

// Reaction is a user's like or dislike on a post. The composite unique
// index keeps it to one row per (user, post) pair; concurrent first-time
// reactions race on the index rather than on any application lock.
type Reaction struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_user_post" json:"post_id"`
	IsLike    bool      `gorm:"not null" json:"is_like"` // true=like, false=dislike
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Post Post `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}
