package models

import (
	"time"
)

type Post struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint      `json:"-" gorm:"not null"`
	User        User      `json:"user" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Description string    `json:"description" gorm:"type:text;not null"` // 1-500 chars
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Like/dislike counts are never stored on the row; they are counted
	// from reactions on every read.
	Reactions []Reaction `json:"-" gorm:"foreignKey:PostID"`
}
