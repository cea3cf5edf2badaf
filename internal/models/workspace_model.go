package models

import "time"

type Workspace struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatorID   uint   `gorm:"not null" json:"creator_id"`
	Creator     User   `gorm:"foreignKey:CreatorID" json:"-"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`

	Channels []Channel `gorm:"foreignKey:WorkspaceID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (Workspace) TableName() string {
	return "workspaces"
}
