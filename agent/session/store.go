package session

import (
	"context"
	"strings"
	"sync"

	contractx "github.com/ovenly/pizza-agent/agent/contract"
)

// MemoryStore keeps sessions in process memory. Append is atomic per store,
// which serializes the only state two concurrent turns for the same user
// could race on.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string][]contractx.Turn
}

var _ contractx.SessionStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string][]contractx.Turn),
	}
}

func (s *MemoryStore) Append(ctx context.Context, userID string, turns ...contractx.Turn) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrInvalidUser
	}
	if len(turns) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = trim(append(s.sessions[userID], turns...))
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, userID string) ([]contractx.Turn, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidUser
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	turns := s.sessions[userID]
	out := make([]contractx.Turn, len(turns))
	copy(out, turns)
	return out, nil
}

func (s *MemoryStore) Clear(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrInvalidUser
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}
