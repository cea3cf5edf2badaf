package services

import "errors"

// Sentinel errors mapped to HTTP status codes by the handlers.
var (
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrEmailExists        = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrWorkspaceNotFound  = errors.New("workspace not found")
	ErrChannelNotFound    = errors.New("channel not found")
	ErrNotMember          = errors.New("not a member of this workspace")
	ErrNoCurrentWorkspace = errors.New("no current workspace found")
)
