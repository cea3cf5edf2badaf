package repositories

import (
	"gorm.io/gorm"

	"github.com/huddlehq/huddle/internal/models"
)

type ChannelRepository struct {
	db *gorm.DB
}

func NewChannelRepository(db *gorm.DB) *ChannelRepository {
	return &ChannelRepository{db: db}
}

// Create 创建频道
func (r *ChannelRepository) Create(channel *models.Channel) error {
	return r.db.Create(channel).Error
}

// GetByID 根据 ID 获取频道
func (r *ChannelRepository) GetByID(id uint) (*models.Channel, error) {
	var channel models.Channel
	if err := r.db.First(&channel, id).Error; err != nil {
		return nil, err
	}
	return &channel, nil
}

// ListByWorkspace 获取 Workspace 的所有频道
func (r *ChannelRepository) ListByWorkspace(workspaceID uint) ([]models.Channel, error) {
	var channels []models.Channel
	err := r.db.Where("workspace_id = ?", workspaceID).
		Order("id asc").
		Find(&channels).Error
	return channels, err
}
