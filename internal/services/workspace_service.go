package services

import (
	"context"

	"github.com/huddlehq/huddle/internal/models"
	"github.com/huddlehq/huddle/internal/repositories"
)

type WorkspaceService struct {
	WorkspaceRepo *repositories.WorkspaceRepository
	UserRepo      *repositories.UserRepository
	Presence      PresenceTracker
}

func NewWorkspaceService(workspaceRepo *repositories.WorkspaceRepository, userRepo *repositories.UserRepository, presence PresenceTracker) *WorkspaceService {
	return &WorkspaceService{
		WorkspaceRepo: workspaceRepo,
		UserRepo:      userRepo,
		Presence:      presence,
	}
}

// CreateWorkspaceRequest 创建 Workspace 请求
type CreateWorkspaceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// Create makes a workspace whose creator becomes its first, admin member.
func (s *WorkspaceService) Create(creatorID uint, req *CreateWorkspaceRequest) (*models.Workspace, error) {
	workspace := &models.Workspace{
		CreatorID:   creatorID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.WorkspaceRepo.Create(workspace); err != nil {
		return nil, err
	}
	return workspace, nil
}

// List returns the workspaces the user belongs to, with membership roles.
func (s *WorkspaceService) List(userID uint) ([]repositories.WorkspaceListRow, error) {
	rows, err := s.WorkspaceRepo.ListForUser(userID)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []repositories.WorkspaceListRow{}
	}
	return rows, nil
}

// SetCurrent points the user at workspaceID as their active workspace.
func (s *WorkspaceService) SetCurrent(userID, workspaceID uint) error {
	exists, err := s.WorkspaceRepo.Exists(workspaceID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrWorkspaceNotFound
	}
	return s.UserRepo.SetCurrentWorkspace(userID, &workspaceID)
}

// GetCurrent returns the user's active workspace id, or
// ErrNoCurrentWorkspace when none has been set.
func (s *WorkspaceService) GetCurrent(userID uint) (uint, error) {
	user, err := s.UserRepo.GetByID(userID)
	if err != nil {
		return 0, err
	}
	if user.CurrentWorkspaceID == nil {
		return 0, ErrNoCurrentWorkspace
	}
	return *user.CurrentWorkspaceID, nil
}

// ListUsers returns the workspace's members with live presence overlaid on
// the persisted online flag. Callers must be members themselves.
func (s *WorkspaceService) ListUsers(ctx context.Context, workspaceID, callerID uint) ([]repositories.WorkspaceUserRow, error) {
	if err := s.requireMember(workspaceID, callerID); err != nil {
		return nil, err
	}

	rows, err := s.WorkspaceRepo.ListUsers(workspaceID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	if live, err := s.Presence.OnlineSet(ctx, ids); err == nil {
		for i := range rows {
			if online, ok := live[rows[i].ID]; ok {
				rows[i].Online = online
			}
		}
	}

	if rows == nil {
		rows = []repositories.WorkspaceUserRow{}
	}
	return rows, nil
}

func (s *WorkspaceService) requireMember(workspaceID, userID uint) error {
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
