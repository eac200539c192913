package repo

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"slugbot/internal/domain"
	"slugbot/internal/pagination"
	"slugbot/internal/service"
)

// MemoryStore is the default session backend: process-lifetime state keyed
// by user id. A per-user mutex serializes read-modify-write sequences, so
// concurrent handlers for different users never contend and concurrent
// handlers for the same user never lose updates.
type MemoryStore struct {
	mu    sync.Mutex // guards users map
	users map[int64]*memUser
}

type memUser struct {
	mu      sync.Mutex
	sess    service.Session
	history []service.HistoryEntry // oldest first
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[int64]*memUser)}
}

func (m *MemoryStore) user(id int64) (*memUser, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	return u, ok
}

func (m *MemoryStore) GetSession(ctx context.Context, userID int64) (service.Session, error) {
	u, ok := m.user(userID)
	if !ok {
		return service.Session{}, domain.ErrSessionNotFound
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	return u.sess, nil
}

func (m *MemoryStore) CreateSession(ctx context.Context, s service.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// first writer wins; a concurrent create for the same user is a no-op
	if _, ok := m.users[s.UserID]; ok {
		return nil
	}
	m.users[s.UserID] = &memUser{sess: s}
	return nil
}

func (m *MemoryStore) SetSeparator(ctx context.Context, userID int64, sep string) error {
	u, ok := m.user(userID)
	if !ok {
		return domain.ErrSessionNotFound
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	u.sess.Separator = sep
	return nil
}

func (m *MemoryStore) AppendHistory(ctx context.Context, e service.HistoryEntry) (service.HistoryEntry, error) {
	u, ok := m.user(e.UserID)
	if !ok {
		return service.HistoryEntry{}, domain.ErrSessionNotFound
	}

	e.ID = uuid.NewString()

	u.mu.Lock()
	defer u.mu.Unlock()

	u.history = append(u.history, e)
	if len(u.history) > service.HistoryCap {
		u.history = append([]service.HistoryEntry(nil), u.history[len(u.history)-service.HistoryCap:]...)
	}
	return e, nil
}

func (m *MemoryStore) ListHistory(ctx context.Context, userID int64, limit int, cursor *pagination.Cursor) ([]service.HistoryEntry, *pagination.Cursor, error) {
	if limit <= 0 {
		limit = 50
	}

	u, ok := m.user(userID)
	if !ok {
		return nil, nil, domain.ErrSessionNotFound
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	// newest first; a cursor resumes just past the entry it names
	start := len(u.history) - 1
	if cursor != nil {
		start = -1
		for i := len(u.history) - 1; i >= 0; i-- {
			if u.history[i].ID == cursor.ID {
				start = i - 1
				break
			}
		}
		// stale cursor (entry rotated out of the cap): empty page
	}

	items := make([]service.HistoryEntry, 0, limit)
	for i := start; i >= 0 && len(items) < limit; i-- {
		items = append(items, u.history[i])
	}

	if len(items) == limit && start-limit >= 0 {
		last := items[len(items)-1]
		return items, &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}, nil
	}
	return items, nil, nil
}
