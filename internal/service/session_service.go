package service

import (
	"context"
	"errors"
	"time"

	"slugbot/internal/domain"
	"slugbot/internal/metrics"
	"slugbot/internal/pagination"
	"slugbot/internal/validate"
)

const (
	// DefaultSeparator joins slug words until the user picks another one.
	DefaultSeparator = "-"

	// HistoryCap bounds stored history per user; stores drop the oldest
	// entries past it. The chat surface shows far fewer.
	HistoryCap = 50
)

// Session is the per-user state kept for the process (or database) lifetime.
type Session struct {
	UserID    int64
	Separator string
	CreatedAt time.Time
}

// HistoryEntry is one past translation: what the user sent and the slug it
// produced.
type HistoryEntry struct {
	ID        string
	UserID    int64
	Original  string
	Slug      string
	CreatedAt time.Time
}

// Store is the session backend. Implementations must be safe for concurrent
// use; read-modify-write per user is serialized inside the store.
type Store interface {
	GetSession(ctx context.Context, userID int64) (Session, error)
	CreateSession(ctx context.Context, s Session) error
	SetSeparator(ctx context.Context, userID int64, sep string) error
	AppendHistory(ctx context.Context, e HistoryEntry) (HistoryEntry, error)
	ListHistory(ctx context.Context, userID int64, limit int, cursor *pagination.Cursor) ([]HistoryEntry, *pagination.Cursor, error)
}

type SessionService struct {
	store Store
	now   func() time.Time
}

func NewSessionService(store Store, now func() time.Time) *SessionService {
	if now == nil {
		now = time.Now
	}
	return &SessionService{store: store, now: now}
}

// GetOrCreate returns the user's session, creating one with the default
// separator on first contact.
func (s *SessionService) GetOrCreate(ctx context.Context, userID int64) (Session, error) {
	sess, err := s.store.GetSession(ctx, userID)
	if err == nil {
		return sess, nil
	}
	if !errors.Is(err, domain.ErrSessionNotFound) {
		return Session{}, err
	}

	sess = Session{
		UserID:    userID,
		Separator: DefaultSeparator,
		CreatedAt: s.now(),
	}
	if err := s.store.CreateSession(ctx, sess); err != nil {
		return Session{}, err
	}
	metrics.SessionsCreatedTotal.Inc()

	// re-read in case a concurrent handler created it first
	return s.store.GetSession(ctx, userID)
}

// SetSeparator validates and stores a new separator. On validation failure
// the stored value is untouched.
func (s *SessionService) SetSeparator(ctx context.Context, userID int64, raw string) (string, error) {
	c, err := validate.Separator(raw)
	if err != nil {
		return "", err
	}

	if _, err := s.GetOrCreate(ctx, userID); err != nil {
		return "", err
	}
	if err := s.store.SetSeparator(ctx, userID, string(c)); err != nil {
		return "", err
	}
	return string(c), nil
}

// ResetSeparator restores the default. History is deliberately kept; the
// button only claims to reset preferences.
func (s *SessionService) ResetSeparator(ctx context.Context, userID int64) error {
	if _, err := s.GetOrCreate(ctx, userID); err != nil {
		return err
	}
	return s.store.SetSeparator(ctx, userID, DefaultSeparator)
}

// AppendHistory records one translation for the user.
func (s *SessionService) AppendHistory(ctx context.Context, userID int64, original, slugText string) (HistoryEntry, error) {
	if _, err := s.GetOrCreate(ctx, userID); err != nil {
		return HistoryEntry{}, err
	}
	return s.store.AppendHistory(ctx, HistoryEntry{
		UserID:    userID,
		Original:  original,
		Slug:      slugText,
		CreatedAt: s.now(),
	})
}

// Recent returns up to n entries, newest first. A user with no session has
// no history.
func (s *SessionService) Recent(ctx context.Context, userID int64, n int) ([]HistoryEntry, error) {
	items, _, err := s.store.ListHistory(ctx, userID, n, nil)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return items, nil
}

// ListHistory exposes the paginated view used by the admin API.
func (s *SessionService) ListHistory(ctx context.Context, userID int64, limit int, cursor *pagination.Cursor) ([]HistoryEntry, *pagination.Cursor, error) {
	return s.store.ListHistory(ctx, userID, limit, cursor)
}
