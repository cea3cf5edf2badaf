package models

import "time"

// User 用户模型
type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"` // salt:hash, never serialized
	Name     string `gorm:"not null" json:"name"`
	Role     string `gorm:"default:user" json:"role"`
	Online   bool   `gorm:"default:false" json:"online"`

	// At most one current workspace per user; null until one is set.
	CurrentWorkspaceID *uint `json:"current_workspace_id"`
	CurrentChannelID   *uint `json:"current_channel_id"`

	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
