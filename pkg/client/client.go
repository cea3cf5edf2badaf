// Package client is a typed Go client for the HTTP API, plus a small
// session state machine tracking which workspace, channel, or DM thread
// the caller is looking at.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIError carries the status code and error body of a failed request.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// Client talks to a running server. Login stores the bearer token so
// subsequent calls are authenticated.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	token string
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Token returns the stored bearer token, empty before login.
func (c *Client) Token() string {
	return c.token
}

type LoginResult struct {
	Name        string `json:"name"`
	AccessToken string `json:"accessToken"`
	ID          uint   `json:"id"`
}

type WorkspaceRow struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type ChannelRow struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type UserRow struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Online bool   `json:"online"`
}

type Message struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
	UserID    uint      `json:"userId"`
}

func (c *Client) Register(email, password, name string) error {
	body := map[string]string{"email": email, "password": password, "name": name}
	return c.do(http.MethodPost, "/api/v0/register", body, nil)
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result LoginResult
	if err := c.do(http.MethodPost, "/api/v0/login", body, &result); err != nil {
		return nil, err
	}
	c.token = result.AccessToken
	return &result, nil
}

// Logout tells the server and drops the stored token.
func (c *Client) Logout() error {
	err := c.do(http.MethodPost, "/api/v0/logout", nil, nil)
	c.token = ""
	return err
}

func (c *Client) CreateWorkspace(name, description string) error {
	body := map[string]string{"name": name, "description": description}
	return c.do(http.MethodPost, "/api/v0/workspaces", body, nil)
}

func (c *Client) ListWorkspaces() ([]WorkspaceRow, error) {
	var rows []WorkspaceRow
	if err := c.do(http.MethodGet, "/api/v0/workspaces", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) SetCurrentWorkspace(workspaceID uint) error {
	body := map[string]uint{"workspaceId": workspaceID}
	return c.do(http.MethodPut, "/api/v0/workspaces/current", body, nil)
}

// CurrentWorkspace returns the active workspace id; a 404 from the
// server surfaces as an *APIError the caller can inspect.
func (c *Client) CurrentWorkspace() (uint, error) {
	var resp struct {
		CurrentWorkspace uint `json:"currentWorkspace"`
	}
	if err := c.do(http.MethodGet, "/api/v0/workspaces/current", nil, &resp); err != nil {
		return 0, err
	}
	return resp.CurrentWorkspace, nil
}

func (c *Client) CreateChannel(workspaceID uint, name string) error {
	body := map[string]string{"name": name}
	path := fmt.Sprintf("/api/v0/workspaces/%d/channels", workspaceID)
	return c.do(http.MethodPost, path, body, nil)
}

func (c *Client) ListChannels(workspaceID uint) ([]ChannelRow, error) {
	var rows []ChannelRow
	path := fmt.Sprintf("/api/v0/workspaces/%d/channels", workspaceID)
	if err := c.do(http.MethodGet, path, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) ListWorkspaceUsers(workspaceID uint) ([]UserRow, error) {
	var rows []UserRow
	path := fmt.Sprintf("/api/v0/workspaces/%d/users", workspaceID)
	if err := c.do(http.MethodGet, path, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) ListMessages(channelID uint) ([]Message, error) {
	var rows []Message
	path := fmt.Sprintf("/api/v0/channels/%d/messages", channelID)
	if err := c.do(http.MethodGet, path, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) SendMessage(channelID uint, content string) (*Message, error) {
	var msg Message
	path := fmt.Sprintf("/api/v0/channels/%d/messages", channelID)
	if err := c.do(http.MethodPost, path, map[string]string{"content": content}, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (c *Client) ListDMs(userID uint) ([]Message, error) {
	var rows []Message
	path := fmt.Sprintf("/api/v0/dm/%d/messages", userID)
	if err := c.do(http.MethodGet, path, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) SendDM(userID uint, content string) (*Message, error) {
	var msg Message
	path := fmt.Sprintf("/api/v0/dm/%d/messages", userID)
	if err := c.do(http.MethodPost, path, map[string]string{"content": content}, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (c *Client) do(method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		var errBody struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		msg := string(raw)
		if json.Unmarshal(raw, &errBody) == nil {
			if errBody.Error != "" {
				msg = errBody.Error
			} else if errBody.Message != "" {
				msg = errBody.Message
			}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil {
		return json.Unmarshal(raw, out)
	}
	return nil
}

// IsStatus reports whether err is an *APIError with the given code.
func IsStatus(err error, code int) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == code
}
