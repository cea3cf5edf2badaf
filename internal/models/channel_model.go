package models

import "time"

type Channel struct {
	ID uint `gorm:"primaryKey" json:"id"`

	WorkspaceID uint   `gorm:"not null;index" json:"workspace_id"`
	Name        string `gorm:"not null" json:"name"`

	CreatedAt time.Time `json:"created_at"`
}

func (Channel) TableName() string {
	return "channels"
}
