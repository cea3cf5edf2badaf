package services

import (
	"context"

	"github.com/huddlehq/huddle/internal/models"
	"github.com/huddlehq/huddle/internal/repositories"
	"github.com/huddlehq/huddle/pkg/jwt"
	"github.com/huddlehq/huddle/pkg/utils"
)

// PresenceTracker marks users online/offline with a liveness TTL.
type PresenceTracker interface {
	SetOnline(ctx context.Context, userID uint) error
	SetOffline(ctx context.Context, userID uint) error
	OnlineSet(ctx context.Context, userIDs []uint) (map[uint]bool, error)
}

type AuthService struct {
	UserRepo *repositories.UserRepository
	Tokens   *jwt.TokenManager
	Presence PresenceTracker
}

func NewAuthService(userRepo *repositories.UserRepository, tokens *jwt.TokenManager, presence PresenceTracker) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Tokens:   tokens,
		Presence: presence,
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Name        string `json:"name"`
	AccessToken string `json:"accessToken"`
	ID          uint   `json:"id"`
}

func (s *AuthService) Register(req *RegisterRequest) (*models.User, error) {
	if !utils.ValidateEmail(req.Email) {
		return nil, ErrInvalidEmail
	}

	exists, err := s.UserRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = "user"
	}

	user := &models.User{
		Email:    req.Email,
		Password: passwordHash,
		Name:     req.Name,
		Role:     role,
	}

	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	user, err := s.UserRepo.GetByEmail(req.Email)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.Tokens.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	if err := s.UserRepo.UpdateOnline(user.ID, true); err != nil {
		return nil, err
	}
	// Presence is advisory: a failed TTL refresh never blocks the login.
	_ = s.Presence.SetOnline(ctx, user.ID)

	return &LoginResponse{
		Name:        user.Name,
		AccessToken: token,
		ID:          user.ID,
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, userID uint) error {
	if err := s.UserRepo.UpdateOnline(userID, false); err != nil {
		return err
	}
	_ = s.Presence.SetOffline(ctx, userID)
	return nil
}
