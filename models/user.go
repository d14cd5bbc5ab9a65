package models

import (
	"time"
)

type User struct {
	ID             uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"-"`
	Email          string     `gorm:"uniqueIndex;size:255;not null" json:"email"` // stored lowercase
	FullName       string     `gorm:"size:255;not null" json:"full_name"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	ProfilePicture string     `json:"profile_picture"`
	Password       string     `gorm:"not null" json:"-"` // bcrypt hash, never exposed
	IsActive       bool       `gorm:"default:true" json:"-"`
	IsStaff        bool       `gorm:"default:false" json:"-"`
	IsSuperuser    bool       `gorm:"default:false" json:"-"`

	Posts         []Post         `json:"-" gorm:"foreignKey:UserID"`
	Reactions     []Reaction     `json:"-" gorm:"foreignKey:UserID"`
	RefreshTokens []RefreshToken `json:"-" gorm:"foreignKey:UserID"`
}
