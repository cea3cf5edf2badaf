package models

import "time"

// Membership roles.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// WorkspaceMember 定义中间表结构，确保创建联合主键/索引
type WorkspaceMember struct {
	WorkspaceID uint      `gorm:"primaryKey" json:"workspace_id"`
	UserID      uint      `gorm:"primaryKey" json:"user_id"`
	Role        string    `gorm:"not null;default:member" json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

func (WorkspaceMember) TableName() string {
	return "workspace_users"
}
