package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"slugbot/internal/domain"
	"slugbot/internal/pagination"
	"slugbot/internal/service"
)

type HistoryEntry struct {
	ID        string    `json:"id"`
	Original  string    `json:"original"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

type ListHistoryResult struct {
	Items      []HistoryEntry `json:"items"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

type HistoryService interface {
	ListHistory(ctx context.Context, userID int64, limit int, cursor *pagination.Cursor) ([]service.HistoryEntry, *pagination.Cursor, error)
}

func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid user id"})
		return
	}

	limit, ok := parseLimit(r, 50, 1, 200)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid limit"})
		return
	}

	var cur *pagination.Cursor
	if raw := strings.TrimSpace(r.URL.Query().Get("cursor")); raw != "" {
		decoded, err := pagination.Decode(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": domain.ErrInvalidCursor.Error()})
			return
		}
		cur = &decoded
	}

	items, next, err := s.deps.History.ListHistory(r.Context(), userID, limit, cur)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]any{"error": "not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal"})
		return
	}

	res := ListHistoryResult{Items: make([]HistoryEntry, 0, len(items))}
	for _, e := range items {
		res.Items = append(res.Items, HistoryEntry{
			ID:        e.ID,
			Original:  e.Original,
			Slug:      e.Slug,
			CreatedAt: e.CreatedAt,
		})
	}
	if next != nil {
		res.NextCursor = pagination.Encode(*next)
	}

	writeJSON(w, http.StatusOK, res)
}
