package pagination

import (
	"encoding/base64"
	"strings"
	"time"

	"slugbot/internal/domain"
)

// Cursor points just past the last history entry of a page. Listing is
// keyset-paginated on (created_at, id) descending.
type Cursor struct {
	CreatedAt time.Time
	ID        string
}

// Encode cursor as base64("RFC3339Nano|id")
func Encode(c Cursor) string {
	raw := c.CreatedAt.UTC().Format(time.RFC3339Nano) + "|" + c.ID
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func Decode(s string) (Cursor, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Cursor{}, domain.ErrInvalidCursor
	}

	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return Cursor{}, domain.ErrInvalidCursor
	}

	ts, id, ok := strings.Cut(string(b), "|")
	if !ok || strings.TrimSpace(id) == "" {
		return Cursor{}, domain.ErrInvalidCursor
	}

	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return Cursor{}, domain.ErrInvalidCursor
	}

	return Cursor{CreatedAt: t, ID: strings.TrimSpace(id)}, nil
}
