package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/huddlehq/huddle/internal/repositories"
	"github.com/huddlehq/huddle/internal/storage"
	"github.com/huddlehq/huddle/pkg/jwt"
)

// stubPresence is an in-memory PresenceTracker for tests.
type stubPresence struct {
	online map[uint]bool
}

func newStubPresence() *stubPresence {
	return &stubPresence{online: make(map[uint]bool)}
}

func (s *stubPresence) SetOnline(_ context.Context, userID uint) error {
	s.online[userID] = true
	return nil
}

func (s *stubPresence) SetOffline(_ context.Context, userID uint) error {
	delete(s.online, userID)
	return nil
}

func (s *stubPresence) OnlineSet(_ context.Context, userIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool, len(userIDs))
	for _, id := range userIDs {
		result[id] = s.online[id]
	}
	return result, nil
}

type testEnv struct {
	presence *stubPresence

	auth       *AuthService
	workspaces *WorkspaceService
	channels   *ChannelService
	messages   *MessageService
	dms        *DMService
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, storage.Migrate(db))

	userRepo := repositories.NewUserRepository(db)
	workspaceRepo := repositories.NewWorkspaceRepository(db)
	channelRepo := repositories.NewChannelRepository(db)
	messageRepo := repositories.NewMessageRepository(db)
	dmRepo := repositories.NewDMRepository(db)

	tokens := jwt.NewTokenManager("test-secret", 14)
	tracker := newStubPresence()

	return &testEnv{
		presence:   tracker,
		auth:       NewAuthService(userRepo, tokens, tracker),
		workspaces: NewWorkspaceService(workspaceRepo, userRepo, tracker),
		channels:   NewChannelService(channelRepo, workspaceRepo),
		messages:   NewMessageService(messageRepo, channelRepo, workspaceRepo, userRepo),
		dms:        NewDMService(dmRepo, userRepo),
	}
}

// register creates a user through the service and returns its id.
func (e *testEnv) register(t *testing.T, email, name string) uint {
	t.Helper()

	user, err := e.auth.Register(&RegisterRequest{
		Email:    email,
		Password: "pw123",
		Name:     name,
	})
	require.NoError(t, err)
	return user.ID
}
