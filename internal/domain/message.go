package domain

import "time"

// Message is one direct message between two users. A conversation is
// not stored; it is the set of messages whose {from, to} pair matches
// the two participants, in either direction.
type Message struct {
	ID        uint       `gorm:"primaryKey" json:"-"`
	UUID      string     `gorm:"uniqueIndex;size:36;not null" json:"uuid"`
	From      string     `gorm:"column:from_user;size:64;not null;index:idx_messages_pair,priority:1" json:"from"`
	To        string     `gorm:"column:to_user;size:64;not null;index:idx_messages_pair,priority:2" json:"to"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	Reactions []Reaction `gorm:"foreignKey:MessageID" json:"reactions,omitempty"`
}

// Participant reports whether username is either endpoint of the
// message. Entitlement to see or react to a message is exactly this.
func (m Message) Participant(username string) bool {
	return m.From == username || m.To == username
}
