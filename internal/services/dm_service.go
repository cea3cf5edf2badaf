package services

import (
	"github.com/huddlehq/huddle/internal/models"
	"github.com/huddlehq/huddle/internal/repositories"
)

type DMService struct {
	DMRepo   *repositories.DMRepository
	UserRepo *repositories.UserRepository
}

func NewDMService(dmRepo *repositories.DMRepository, userRepo *repositories.UserRepository) *DMService {
	return &DMService{
		DMRepo:   dmRepo,
		UserRepo: userRepo,
	}
}

// List returns the thread between the requester and the other user in
// ascending timestamp order. The requester's own messages are labeled "You".
func (s *DMService) List(requesterID, otherID uint) ([]MessageResponse, error) {
	exists, err := s.UserRepo.Exists(otherID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	dms, err := s.DMRepo.ListBetween(requesterID, otherID)
	if err != nil {
		return nil, err
	}

	rows := make([]MessageResponse, len(dms))
	for i, dm := range dms {
		rows[i] = MessageResponse{
			ID:        dm.ID,
			Content:   dm.Content,
			Timestamp: dm.CreatedAt,
			UserID:    dm.SenderID,
		}
		if dm.SenderID == requesterID {
			rows[i].Sender = "You"
		} else if dm.Sender != nil {
			rows[i].Sender = dm.Sender.Name
		}
	}
	return rows, nil
}

// Send stores a direct message to the receiver and returns it with the
// sender's name resolved.
func (s *DMService) Send(senderID, receiverID uint, req *SendMessageRequest) (*MessageResponse, error) {
	exists, err := s.UserRepo.Exists(receiverID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	sender, err := s.UserRepo.GetByID(senderID)
	if err != nil {
		return nil, err
	}

	dm := &models.DirectMessage{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    req.Content,
	}
	if err := s.DMRepo.Create(dm); err != nil {
		return nil, err
	}

	return &MessageResponse{
		ID:        dm.ID,
		Content:   dm.Content,
		Sender:    sender.Name,
		Timestamp: dm.CreatedAt,
		UserID:    senderID,
	}, nil
}
