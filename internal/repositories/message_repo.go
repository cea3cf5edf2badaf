package repositories

import (
	"gorm.io/gorm"

	"github.com/huddlehq/huddle/internal/models"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create 创建消息
func (r *MessageRepository) Create(msg *models.Message) error {
	return r.db.Create(msg).Error
}

// ListByChannel 获取频道的历史消息
// 实现逻辑：按时间升序排列，并预加载发送者信息
func (r *MessageRepository) ListByChannel(channelID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where("channel_id = ?", channelID).
		Order("created_at asc, id asc").
		Preload("Sender").
		Find(&messages).Error
	return messages, err
}
