package routers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	appconfig "github.com/huddlehq/huddle/config"
	"github.com/huddlehq/huddle/internal/handlers"
	"github.com/huddlehq/huddle/internal/presence"
	"github.com/huddlehq/huddle/internal/repositories"
	"github.com/huddlehq/huddle/internal/services"
	"github.com/huddlehq/huddle/internal/storage"
	"github.com/huddlehq/huddle/pkg/jwt"
	"github.com/huddlehq/huddle/pkg/logger"
)

// setupRouter wires the full stack against sqlite and miniredis, the same
// way cmd/main.go does against postgres and redis.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:router_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, storage.Migrate(db))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	userRepo := repositories.NewUserRepository(db)
	workspaceRepo := repositories.NewWorkspaceRepository(db)
	channelRepo := repositories.NewChannelRepository(db)
	messageRepo := repositories.NewMessageRepository(db)
	dmRepo := repositories.NewDMRepository(db)

	tokens := jwt.NewTokenManager("router-test-secret", 14)
	tracker := presence.NewTracker(rdb, time.Minute)

	h := Handlers{
		Auth:      handlers.NewAuthHandler(services.NewAuthService(userRepo, tokens, tracker)),
		Workspace: handlers.NewWorkspaceHandler(services.NewWorkspaceService(workspaceRepo, userRepo, tracker)),
		Channel:   handlers.NewChannelHandler(services.NewChannelService(channelRepo, workspaceRepo)),
		Message:   handlers.NewMessageHandler(services.NewMessageService(messageRepo, channelRepo, workspaceRepo, userRepo)),
		DM:        handlers.NewDMHandler(services.NewDMService(dmRepo, userRepo)),
	}

	cfg := &appconfig.Config{}
	r := gin.New()
	SetupRoutes(r, cfg, logger.NewNop(), tokens, nil, h)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// registerAndLogin runs the register + login flow and returns the token.
func registerAndLogin(t *testing.T, r *gin.Engine, email, name string) (string, uint) {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/v0/register", "", gin.H{
		"email": email, "password": "pw123", "name": name,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/v0/login", "", gin.H{
		"email": email, "password": "pw123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Name        string `json:"name"`
		AccessToken string `json:"accessToken"`
		ID          uint   `json:"id"`
	}
	decodeBody(t, w, &resp)
	require.Equal(t, name, resp.Name)
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken, resp.ID
}

func TestHealthCheck(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"Status":"OK"}`, w.Body.String())
}

func TestRegisterLoginWorkspaceFlow(t *testing.T) {
	r := setupRouter(t)
	token, _ := registerAndLogin(t, r, "alice@example.com", "alice")

	w := doJSON(t, r, http.MethodPost, "/api/v0/workspaces", token, gin.H{"name": "T"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/v0/workspaces", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var rows []struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
		Role string `json:"role"`
	}
	decodeBody(t, w, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, "T", rows[0].Name)
	assert.Equal(t, "admin", rows[0].Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r := setupRouter(t)
	registerAndLogin(t, r, "alice@example.com", "alice")

	w := doJSON(t, r, http.MethodPost, "/api/v0/register", "", gin.H{
		"email": "alice@example.com", "password": "other", "name": "dupe",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	r := setupRouter(t)
	registerAndLogin(t, r, "alice@example.com", "alice")

	w := doJSON(t, r, http.MethodPost, "/api/v0/login", "", gin.H{
		"email": "alice@example.com", "password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, w.Body.String())
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v0/workspaces", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v0/workspaces", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCurrentWorkspaceRoundTrip(t *testing.T) {
	r := setupRouter(t)
	token, _ := registerAndLogin(t, r, "alice@example.com", "alice")

	w := doJSON(t, r, http.MethodGet, "/api/v0/workspaces/current", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"No current workspace found"}`, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/v0/workspaces", token, gin.H{"name": "T"})
	require.Equal(t, http.StatusCreated, w.Code)

	var rows []struct {
		ID uint `json:"id"`
	}
	w = doJSON(t, r, http.MethodGet, "/api/v0/workspaces", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &rows)
	require.Len(t, rows, 1)

	w = doJSON(t, r, http.MethodPut, "/api/v0/workspaces/current", token, gin.H{"workspaceId": rows[0].ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/v0/workspaces/current", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var current struct {
		CurrentWorkspace uint `json:"currentWorkspace"`
	}
	decodeBody(t, w, &current)
	assert.Equal(t, rows[0].ID, current.CurrentWorkspace)

	w = doJSON(t, r, http.MethodPut, "/api/v0/workspaces/current", token, gin.H{"workspaceId": 999})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChannelMessagesFlow(t *testing.T) {
	r := setupRouter(t)
	token, aliceID := registerAndLogin(t, r, "alice@example.com", "alice")

	w := doJSON(t, r, http.MethodPost, "/api/v0/workspaces", token, gin.H{"name": "T"})
	require.Equal(t, http.StatusCreated, w.Code)

	var workspaces []struct {
		ID uint `json:"id"`
	}
	w = doJSON(t, r, http.MethodGet, "/api/v0/workspaces", token, nil)
	decodeBody(t, w, &workspaces)
	require.Len(t, workspaces, 1)
	wsID := workspaces[0].ID

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v0/workspaces/%d/channels", wsID), token, gin.H{"name": "general"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var channels []struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v0/workspaces/%d/channels", wsID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &channels)
	require.Len(t, channels, 1)
	chID := channels[0].ID

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v0/channels/%d/messages", chID), token, gin.H{"content": "hello"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var messages []struct {
		Content string `json:"content"`
		Sender  string `json:"sender"`
		UserID  uint   `json:"userId"`
	}
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v0/channels/%d/messages", chID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &messages)
	require.Len(t, messages, 1)
	assert.Equal(t, "hello", messages[0].Content)
	assert.Equal(t, "alice", messages[0].Sender)
	assert.Equal(t, aliceID, messages[0].UserID)
}

func TestChannelMessagesMissingChannel(t *testing.T) {
	r := setupRouter(t)
	token, _ := registerAndLogin(t, r, "alice@example.com", "alice")

	w := doJSON(t, r, http.MethodGet, "/api/v0/channels/999/messages", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Channel not found"}`, w.Body.String())
}

func TestChannelAccessForbiddenForNonMembers(t *testing.T) {
	r := setupRouter(t)
	aliceToken, _ := registerAndLogin(t, r, "alice@example.com", "alice")
	bobToken, _ := registerAndLogin(t, r, "bob@example.com", "bob")

	w := doJSON(t, r, http.MethodPost, "/api/v0/workspaces", aliceToken, gin.H{"name": "T"})
	require.Equal(t, http.StatusCreated, w.Code)

	var workspaces []struct {
		ID uint `json:"id"`
	}
	w = doJSON(t, r, http.MethodGet, "/api/v0/workspaces", aliceToken, nil)
	decodeBody(t, w, &workspaces)
	require.Len(t, workspaces, 1)
	wsID := workspaces[0].ID

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v0/workspaces/%d/channels", wsID), bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v0/workspaces/%d/users", wsID), bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDirectMessagesFlow(t *testing.T) {
	r := setupRouter(t)
	aliceToken, aliceID := registerAndLogin(t, r, "alice@example.com", "alice")
	bobToken, bobID := registerAndLogin(t, r, "bob@example.com", "bob")

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v0/dm/%d/messages", bobID), aliceToken, gin.H{"content": "hi bob"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var thread []struct {
		Content string `json:"content"`
		Sender  string `json:"sender"`
	}

	// Alice sees her own message as "You".
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v0/dm/%d/messages", bobID), aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &thread)
	require.Len(t, thread, 1)
	assert.Equal(t, "You", thread[0].Sender)

	// Bob sees the same message attributed to alice.
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v0/dm/%d/messages", aliceID), bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &thread)
	require.Len(t, thread, 1)
	assert.Equal(t, "alice", thread[0].Sender)
	assert.Equal(t, "hi bob", thread[0].Content)
}

func TestDirectMessagesUnknownUser(t *testing.T) {
	r := setupRouter(t)
	token, _ := registerAndLogin(t, r, "alice@example.com", "alice")

	w := doJSON(t, r, http.MethodGet, "/api/v0/dm/999/messages", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"User not found"}`, w.Body.String())
}

func TestLogout(t *testing.T) {
	r := setupRouter(t)
	token, _ := registerAndLogin(t, r, "alice@example.com", "alice")

	w := doJSON(t, r, http.MethodPost, "/api/v0/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
