package validate

import (
	"strings"

	"slugbot/internal/domain"
)

// NormalizeLang validates a 2-letter ISO 639-1 language code and returns it
// lowercased.
func NormalizeLang(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 {
		return "", domain.ErrInvalidLang
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return "", domain.ErrInvalidLang
		}
	}
	return s, nil
}
