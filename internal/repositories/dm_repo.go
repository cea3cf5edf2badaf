package repositories

import (
	"gorm.io/gorm"

	"github.com/huddlehq/huddle/internal/models"
)

type DMRepository struct {
	db *gorm.DB
}

func NewDMRepository(db *gorm.DB) *DMRepository {
	return &DMRepository{db: db}
}

// Create 创建私信
func (r *DMRepository) Create(dm *models.DirectMessage) error {
	return r.db.Create(dm).Error
}

// ListBetween returns the full DM thread between two users regardless of
// direction, oldest first, with sender info preloaded.
func (r *DMRepository) ListBetween(userA, userB uint) ([]models.DirectMessage, error) {
	var dms []models.DirectMessage
	err := r.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("created_at asc, id asc").
		Preload("Sender").
		Find(&dms).Error
	return dms, err
}
