package models

import "time"

// DirectMessage is a private message between two users, not scoped to a
// workspace.
type DirectMessage struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SenderID   uint      `gorm:"not null;index" json:"sender_id"`
	ReceiverID uint      `gorm:"not null;index" json:"receiver_id"`
	Content    string    `gorm:"not null" json:"content"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	Sender     *User     `gorm:"foreignKey:SenderID" json:"-"`
}

func (DirectMessage) TableName() string {
	return "dms"
}
