package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tieubaoca/pdfchat-be/types"
	"github.com/tieubaoca/pdfchat-be/utils"
)

const defaultTitle = "New Chat"

// maxTitleLen bounds the session title derived from the first message.
const maxTitleLen = 30

// SessionStore manages the collection of independent chat sessions.
type SessionStore interface {
	Load() error
	Save() error
	CreateSession() (*types.Session, error)
	GetSession(id string) (*types.Session, error)
	SelectSession(id string) (*types.Session, error)
	AppendMessage(sessionID string, msg types.Message) error
	ListSessions() []types.Session
	ActiveSessionID() string
}

// FileStore persists the whole session collection as a single JSON record,
// rewritten after every mutation. Last writer wins; concurrent writers from
// other processes are not synchronized.
type FileStore struct {
	path string

	mu       sync.Mutex
	sessions []*types.Session
	activeID string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the collection from disk. The most recently created session
// becomes active; when the file is missing or empty a fresh session is
// created so the store never starts without one.
func (s *FileStore) Load() error {
	s.mu.Lock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.mu.Unlock()
			return fmt.Errorf("read session file: %w", err)
		}
		data = nil
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.sessions); err != nil {
			s.mu.Unlock()
			return fmt.Errorf("decode session file: %w", err)
		}
	}

	if len(s.sessions) == 0 {
		s.mu.Unlock()
		_, err := s.CreateSession()
		return err
	}

	s.activeID = s.sessions[len(s.sessions)-1].ID
	s.mu.Unlock()
	return nil
}

// Save writes the full collection back to disk.
func (s *FileStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *FileStore) saveLocked() error {
	data, err := json.MarshalIndent(s.sessions, "", "  ")
	if err != nil {
		return fmt.Errorf("encode sessions: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// CreateSession appends a fresh empty session, marks it active and persists
// the collection.
func (s *FileStore) CreateSession() (*types.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := &types.Session{
		ID:        uuid.NewString(),
		Title:     defaultTitle,
		Messages:  []types.Message{},
		CreatedAt: time.Now().UTC(),
	}
	s.sessions = append(s.sessions, session)
	s.activeID = session.ID

	if err := s.saveLocked(); err != nil {
		return nil, err
	}
	return copySession(session), nil
}

// GetSession returns a copy of the session with the given id.
func (s *FileStore) GetSession(id string) (*types.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.findLocked(id)
	if session == nil {
		return nil, fmt.Errorf("%w: %s", types.ErrSessionNotFound, id)
	}
	return copySession(session), nil
}

// SelectSession marks the session active and returns a copy of it.
func (s *FileStore) SelectSession(id string) (*types.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.findLocked(id)
	if session == nil {
		return nil, fmt.Errorf("%w: %s", types.ErrSessionNotFound, id)
	}
	s.activeID = session.ID
	return copySession(session), nil
}

// AppendMessage adds msg to the session's message list in arrival order and
// persists. The title is derived from the first message of the session.
func (s *FileStore) AppendMessage(sessionID string, msg types.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.findLocked(sessionID)
	if session == nil {
		return fmt.Errorf("%w: %s", types.ErrSessionNotFound, sessionID)
	}

	session.Messages = append(session.Messages, msg)
	if len(session.Messages) == 1 {
		session.Title = utils.TruncateForTitle(msg.Content, maxTitleLen)
	}
	return s.saveLocked()
}

// ListSessions returns copies of all sessions in creation order.
func (s *FileStore) ListSessions() []types.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]types.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		out = append(out, *copySession(session))
	}
	return out
}

// ActiveSessionID reports the currently selected session, empty before Load.
func (s *FileStore) ActiveSessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

func (s *FileStore) findLocked(id string) *types.Session {
	for _, session := range s.sessions {
		if session.ID == id {
			return session
		}
	}
	return nil
}

func copySession(session *types.Session) *types.Session {
	out := *session
	out.Messages = make([]types.Message, len(session.Messages))
	copy(out.Messages, session.Messages)
	return &out
}
