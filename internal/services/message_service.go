package services

import (
	"time"

	"github.com/huddlehq/huddle/internal/models"
	"github.com/huddlehq/huddle/internal/repositories"
)

type MessageService struct {
	MessageRepo   *repositories.MessageRepository
	ChannelRepo   *repositories.ChannelRepository
	WorkspaceRepo *repositories.WorkspaceRepository
	UserRepo      *repositories.UserRepository
}

func NewMessageService(
	messageRepo *repositories.MessageRepository,
	channelRepo *repositories.ChannelRepository,
	workspaceRepo *repositories.WorkspaceRepository,
	userRepo *repositories.UserRepository,
) *MessageService {
	return &MessageService{
		MessageRepo:   messageRepo,
		ChannelRepo:   channelRepo,
		WorkspaceRepo: workspaceRepo,
		UserRepo:      userRepo,
	}
}

// SendMessageRequest 发送消息请求
type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// MessageResponse is the wire shape of a channel or direct message.
type MessageResponse struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
	UserID    uint      `json:"userId"`
}

// List returns the channel's messages in ascending timestamp order with
// sender names resolved. The caller must be a member of the channel's
// workspace.
func (s *MessageService) List(channelID, callerID uint) ([]MessageResponse, error) {
	channel, err := s.getChannel(channelID, callerID)
	if err != nil {
		return nil, err
	}

	messages, err := s.MessageRepo.ListByChannel(channel.ID)
	if err != nil {
		return nil, err
	}

	rows := make([]MessageResponse, len(messages))
	for i, msg := range messages {
		rows[i] = MessageResponse{
			ID:        msg.ID,
			Content:   msg.Content,
			Timestamp: msg.CreatedAt,
			UserID:    msg.UserID,
		}
		if msg.Sender != nil {
			rows[i].Sender = msg.Sender.Name
		}
	}
	return rows, nil
}

// Post stores a message in the channel and returns it with the sender's
// name resolved.
func (s *MessageService) Post(channelID, callerID uint, req *SendMessageRequest) (*MessageResponse, error) {
	channel, err := s.getChannel(channelID, callerID)
	if err != nil {
		return nil, err
	}

	sender, err := s.UserRepo.GetByID(callerID)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		ChannelID: channel.ID,
		UserID:    callerID,
		Content:   req.Content,
	}
	if err := s.MessageRepo.Create(msg); err != nil {
		return nil, err
	}

	return &MessageResponse{
		ID:        msg.ID,
		Content:   msg.Content,
		Sender:    sender.Name,
		Timestamp: msg.CreatedAt,
		UserID:    callerID,
	}, nil
}

// getChannel resolves the channel and enforces workspace membership.
func (s *MessageService) getChannel(channelID, callerID uint) (*models.Channel, error) {
	channel, err := s.ChannelRepo.GetByID(channelID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}

	member, err := s.WorkspaceRepo.IsMember(channel.WorkspaceID, callerID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrNotMember
	}
	return channel, nil
}
