package services

import (
	"github.com/huddlehq/huddle/internal/models"
	"github.com/huddlehq/huddle/internal/repositories"
)

type ChannelService struct {
	ChannelRepo   *repositories.ChannelRepository
	WorkspaceRepo *repositories.WorkspaceRepository
}

func NewChannelService(channelRepo *repositories.ChannelRepository, workspaceRepo *repositories.WorkspaceRepository) *ChannelService {
	return &ChannelService{
		ChannelRepo:   channelRepo,
		WorkspaceRepo: workspaceRepo,
	}
}

// CreateChannelRequest 创建频道请求
type CreateChannelRequest struct {
	Name string `json:"name" binding:"required"`
}

// ChannelRow is one row of a workspace's channel listing.
type ChannelRow struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Create adds a channel to the workspace. The caller must be a member.
func (s *ChannelService) Create(workspaceID, callerID uint, req *CreateChannelRequest) (*models.Channel, error) {
	if err := s.requireMember(workspaceID, callerID); err != nil {
		return nil, err
	}

	channel := &models.Channel{
		WorkspaceID: workspaceID,
		Name:        req.Name,
	}
	if err := s.ChannelRepo.Create(channel); err != nil {
		return nil, err
	}
	return channel, nil
}

// List returns the workspace's channels. The caller must be a member.
func (s *ChannelService) List(workspaceID, callerID uint) ([]ChannelRow, error) {
	if err := s.requireMember(workspaceID, callerID); err != nil {
		return nil, err
	}

	channels, err := s.ChannelRepo.ListByWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}

	rows := make([]ChannelRow, len(channels))
	for i, ch := range channels {
		rows[i] = ChannelRow{ID: ch.ID, Name: ch.Name}
	}
	return rows, nil
}

func (s *ChannelService) requireMember(workspaceID, userID uint) error {
	exists, err := s.WorkspaceRepo.Exists(workspaceID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrWorkspaceNotFound
	}

	member, err := s.WorkspaceRepo.IsMember(workspaceID, userID)
	if err != nil {
		return err
	}
	if !member {
		return ErrNotMember
	}
	return nil
}
