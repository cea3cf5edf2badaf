package client

import "net/http"

// Session drives the view state a chat frontend holds: the active
// workspace, its cached channel and member lists, and which channel or
// DM thread is on screen. Nothing persists beyond the bearer token and
// these cached lists; Refresh re-fetches everything.
type Session struct {
	api *Client

	loggedIn           bool
	userID             uint
	userName           string
	currentWorkspaceID uint

	channels []ChannelRow
	users    []UserRow

	selectedChannelID uint
	selectedDMUserID  uint
	viewingMessages   bool
}

func NewSession(api *Client) *Session {
	return &Session{api: api}
}

func (s *Session) LoggedIn() bool           { return s.loggedIn }
func (s *Session) UserID() uint             { return s.userID }
func (s *Session) UserName() string         { return s.userName }
func (s *Session) CurrentWorkspaceID() uint { return s.currentWorkspaceID }
func (s *Session) Channels() []ChannelRow   { return s.channels }
func (s *Session) Users() []UserRow         { return s.users }
func (s *Session) SelectedChannelID() uint  { return s.selectedChannelID }
func (s *Session) SelectedDMUserID() uint   { return s.selectedDMUserID }
func (s *Session) ViewingMessages() bool    { return s.viewingMessages }

// Login authenticates and loads the workspace view: current workspace,
// its channels and members, with the first channel selected by default.
func (s *Session) Login(email, password string) error {
	result, err := s.api.Login(email, password)
	if err != nil {
		return err
	}
	s.loggedIn = true
	s.userID = result.ID
	s.userName = result.Name
	return s.Refresh()
}

// Refresh re-fetches the current workspace and its lists. A user with
// no current workspace falls back to the first workspace they belong
// to, if any.
func (s *Session) Refresh() error {
	wsID, err := s.api.CurrentWorkspace()
	if err != nil {
		if !IsStatus(err, http.StatusNotFound) {
			return err
		}
		workspaces, err := s.api.ListWorkspaces()
		if err != nil {
			return err
		}
		if len(workspaces) == 0 {
			s.currentWorkspaceID = 0
			s.channels = nil
			s.users = nil
			return nil
		}
		wsID = workspaces[0].ID
		if err := s.api.SetCurrentWorkspace(wsID); err != nil {
			return err
		}
	}
	return s.loadWorkspace(wsID)
}

// SwitchWorkspace makes workspaceID the active workspace and reloads
// its channels and members.
func (s *Session) SwitchWorkspace(workspaceID uint) error {
	if err := s.api.SetCurrentWorkspace(workspaceID); err != nil {
		return err
	}
	return s.loadWorkspace(workspaceID)
}

func (s *Session) loadWorkspace(workspaceID uint) error {
	channels, err := s.api.ListChannels(workspaceID)
	if err != nil {
		return err
	}
	users, err := s.api.ListWorkspaceUsers(workspaceID)
	if err != nil {
		return err
	}

	s.currentWorkspaceID = workspaceID
	s.channels = channels
	s.users = users
	s.selectedDMUserID = 0
	s.viewingMessages = false

	// Default to the first channel so the thread pane is never empty.
	s.selectedChannelID = 0
	if len(channels) > 0 {
		s.selectedChannelID = channels[0].ID
	}
	return nil
}

// SelectChannel opens a channel thread, clearing any DM selection.
func (s *Session) SelectChannel(channelID uint) ([]Message, error) {
	msgs, err := s.api.ListMessages(channelID)
	if err != nil {
		return nil, err
	}
	s.selectedChannelID = channelID
	s.selectedDMUserID = 0
	s.viewingMessages = true
	return msgs, nil
}

// SelectDM opens a direct-message thread, clearing any channel selection.
func (s *Session) SelectDM(userID uint) ([]Message, error) {
	msgs, err := s.api.ListDMs(userID)
	if err != nil {
		return nil, err
	}
	s.selectedDMUserID = userID
	s.selectedChannelID = 0
	s.viewingMessages = true
	return msgs, nil
}

// Send posts to whichever thread is currently selected.
func (s *Session) Send(content string) (*Message, error) {
	if s.selectedDMUserID != 0 {
		return s.api.SendDM(s.selectedDMUserID, content)
	}
	return s.api.SendMessage(s.selectedChannelID, content)
}

// Back leaves the thread view without dropping the selection caches.
func (s *Session) Back() {
	s.viewingMessages = false
}

// Logout clears all session state and the stored token.
func (s *Session) Logout() error {
	err := s.api.Logout()
	*s = Session{api: s.api}
	return err
}
