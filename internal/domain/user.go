package domain

import "time"

// User is owned by the directory; the messaging core only reads it.
// The password hash never leaves the process.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	Username     string    `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email,omitempty"`
	PasswordHash string    `gorm:"not null" json:"-"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`

	// LatestMessage decorates user listings with the most recent
	// message between the caller and this user. Derived, not stored.
	LatestMessage *Message `gorm:"-" json:"latestMessage,omitempty"`
}
