package repositories

import (
	"gorm.io/gorm"

	"github.com/huddlehq/huddle/internal/models"
)

type WorkspaceRepository struct {
	db *gorm.DB
}

func NewWorkspaceRepository(db *gorm.DB) *WorkspaceRepository {
	return &WorkspaceRepository{db: db}
}

// WorkspaceListRow is one row of a user's workspace listing.
type WorkspaceListRow struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// WorkspaceUserRow is one row of a workspace's member listing.
type WorkspaceUserRow struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Online bool   `json:"online"`
}

// Create 创建 Workspace 并将创建者添加为管理员成员
// 实现逻辑：开启事务，创建 Workspace 记录，然后向关联表 workspace_users
// 插入创建者的 admin 成员记录
func (r *WorkspaceRepository) Create(workspace *models.Workspace) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(workspace).Error; err != nil {
			return err
		}
		member := models.WorkspaceMember{
			WorkspaceID: workspace.ID,
			UserID:      workspace.CreatorID,
			Role:        models.RoleAdmin,
		}
		if err := tx.Create(&member).Error; err != nil {
			return err
		}
		return nil
	})
}

// GetByID 根据 ID 获取 Workspace 信息
func (r *WorkspaceRepository) GetByID(id uint) (*models.Workspace, error) {
	var workspace models.Workspace
	if err := r.db.First(&workspace, id).Error; err != nil {
		return nil, err
	}
	return &workspace, nil
}

// ListForUser returns every workspace the user is a member of, with the
// membership role attached.
func (r *WorkspaceRepository) ListForUser(userID uint) ([]WorkspaceListRow, error) {
	var rows []WorkspaceListRow
	err := r.db.Model(&models.Workspace{}).
		Select("workspaces.id, workspaces.name, workspace_users.role").
		Joins("JOIN workspace_users ON workspace_users.workspace_id = workspaces.id").
		Where("workspace_users.user_id = ?", userID).
		Scan(&rows).Error
	return rows, err
}

// ListUsers returns every member of the workspace with name and online flag.
func (r *WorkspaceRepository) ListUsers(workspaceID uint) ([]WorkspaceUserRow, error) {
	var rows []WorkspaceUserRow
	err := r.db.Model(&models.User{}).
		Select("users.id, users.name, users.online").
		Joins("JOIN workspace_users ON workspace_users.user_id = users.id").
		Where("workspace_users.workspace_id = ?", workspaceID).
		Scan(&rows).Error
	return rows, err
}

// IsMember 检查用户是否是 Workspace 成员
// 实现逻辑：查询 workspace_users 中间表，利用联合主键索引
func (r *WorkspaceRepository) IsMember(workspaceID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.WorkspaceMember{}).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Count(&count).Error
	return count > 0, err
}

// Exists reports whether a workspace row with the id exists.
func (r *WorkspaceRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Workspace{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
