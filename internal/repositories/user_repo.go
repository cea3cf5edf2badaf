package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/huddlehq/huddle/internal/models"
)

// UserRepository 用户仓储
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储实例
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create 创建用户
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByID 根据ID获取用户
func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail 根据邮箱获取用户
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByEmail reports whether a user row with the email already exists.
func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// Exists reports whether a user row with the id exists.
func (r *UserRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// SetCurrentWorkspace points the user at a workspace with a single UPDATE,
// keeping "at most one current workspace" atomic under concurrent requests.
func (r *UserRepository) SetCurrentWorkspace(userID uint, workspaceID *uint) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("current_workspace_id", workspaceID).Error
}

// UpdateOnline 更新用户在线状态
func (r *UserRepository) UpdateOnline(id uint, online bool) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("online", online).Error
}

// IsNotFound reports whether err is gorm's empty-result error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
