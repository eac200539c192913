package validate

import (
	"strings"

	"slugbot/internal/domain"
	"slugbot/internal/slug"
)

// Separator checks that s (after trimming) is exactly one character from the
// allowed set and returns it as a byte.
func Separator(s string) (byte, error) {
	s = strings.TrimSpace(s)
	if len(s) != 1 {
		return 0, domain.ErrInvalidSeparator
	}
	if !strings.ContainsRune(slug.Separators, rune(s[0])) {
		return 0, domain.ErrInvalidSeparator
	}
	return s[0], nil
}
