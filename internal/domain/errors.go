package domain

import "errors"

var (
	ErrInvalidSeparator = errors.New("invalid separator")
	ErrInvalidLang      = errors.New("invalid language code")
	ErrEmptyMessage     = errors.New("empty message")
	ErrSessionNotFound  = errors.New("session not found")
	ErrInvalidCursor    = errors.New("invalid cursor")
	ErrNoHistory        = errors.New("no history")

	// ErrTranslateFailed wraps any provider-side failure. Handlers show a
	// generic apology; the wrapped detail is for logs only.
	ErrTranslateFailed = errors.New("translation failed")
)
