package domain

import "time"

// Reaction is one user's emoji on one message. The composite unique
// index is what makes the upsert race-free: a second reaction from
// the same user on the same message updates the existing row.
type Reaction struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	MessageID uint      `gorm:"not null;uniqueIndex:idx_reactions_message_user,priority:1" json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_reactions_message_user,priority:2" json:"-"`
	Content   string    `gorm:"size:16;not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Message *Message `gorm:"foreignKey:MessageID" json:"message,omitempty"`
	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// AllowedReactions is the fixed emoji set a reaction may carry.
var AllowedReactions = []string{"❤️", "😆", "😯", "😢", "😡", "👍", "👎"}

func ValidReaction(content string) bool {
	for _, emoji := range AllowedReactions {
		if content == emoji {
			return true
		}
	}
	return false
}
