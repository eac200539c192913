package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"slugbot/internal/domain"
	"slugbot/internal/pagination"
	"slugbot/internal/service"
)

// DB is the slice of pgx the store uses. Both *pgx.Conn (tests) and
// *pgxpool.Pool (production, safe for concurrent handlers) satisfy it.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresStore is the opt-in durable session backend.
type PostgresStore struct {
	db DB
}

func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (r *PostgresStore) GetSession(ctx context.Context, userID int64) (service.Session, error) {
	var s service.Session
	err := r.db.QueryRow(ctx, `
		select user_id, separator, created_at
		from sessions
		where user_id = $1
	`, userID).Scan(&s.UserID, &s.Separator, &s.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return service.Session{}, domain.ErrSessionNotFound
		}
		return service.Session{}, err
	}
	return s, nil
}

func (r *PostgresStore) CreateSession(ctx context.Context, s service.Session) error {
	// first writer wins; concurrent first contact is a no-op
	_, err := r.db.Exec(ctx, `
		insert into sessions (user_id, separator, created_at)
		values ($1, $2, $3)
		on conflict (user_id) do nothing
	`, s.UserID, s.Separator, s.CreatedAt)
	return err
}

func (r *PostgresStore) SetSeparator(ctx context.Context, userID int64, sep string) error {
	tag, err := r.db.Exec(ctx, `
		update sessions set separator = $2 where user_id = $1
	`, userID, sep)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *PostgresStore) AppendHistory(ctx context.Context, e service.HistoryEntry) (service.HistoryEntry, error) {
	e.ID = uuid.NewString()

	_, err := r.db.Exec(ctx, `
		insert into history (id, user_id, original, slug, created_at)
		values ($1, $2, $3, $4, $5)
	`, e.ID, e.UserID, e.Original, e.Slug, e.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return service.HistoryEntry{}, domain.ErrSessionNotFound
		}
		return service.HistoryEntry{}, err
	}

	// enforce the per-user cap; cheap because the partial set is tiny
	_, err = r.db.Exec(ctx, `
		delete from history
		where user_id = $1
		  and id not in (
			select id from history
			where user_id = $1
			order by created_at desc, id desc
			limit $2
		  )
	`, e.UserID, service.HistoryCap)
	if err != nil {
		return service.HistoryEntry{}, err
	}

	return e, nil
}

func (r *PostgresStore) ListHistory(ctx context.Context, userID int64, limit int, cursor *pagination.Cursor) ([]service.HistoryEntry, *pagination.Cursor, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `
		select exists (select 1 from sessions where user_id = $1)
	`, userID).Scan(&exists); err != nil {
		return nil, nil, err
	}
	if !exists {
		return nil, nil, domain.ErrSessionNotFound
	}

	// Stable ordering: created_at DESC, id DESC
	var rows pgx.Rows
	var err error

	if cursor == nil {
		rows, err = r.db.Query(ctx, `
			select id::text, user_id, original, slug, created_at
			from history
			where user_id = $1
			order by created_at desc, id desc
			limit $2
		`, userID, limit)
	} else {
		rows, err = r.db.Query(ctx, `
			select id::text, user_id, original, slug, created_at
			from history
			where user_id = $1
			  and (created_at, id) < ($2::timestamptz, $3::uuid)
			order by created_at desc, id desc
			limit $4
		`, userID, cursor.CreatedAt, cursor.ID, limit)
	}
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	items := make([]service.HistoryEntry, 0, limit)
	for rows.Next() {
		var e service.HistoryEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Original, &e.Slug, &e.CreatedAt); err != nil {
			return nil, nil, err
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	if len(items) == limit {
		last := items[len(items)-1]
		next := &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
		return items, next, nil
	}
	return items, nil, nil
}
