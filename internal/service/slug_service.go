package service

import (
	"context"
	"fmt"
	"strings"

	"slugbot/internal/domain"
	"slugbot/internal/metrics"
	"slugbot/internal/slug"
	"slugbot/internal/translate"
)

// SlugResult is what one inbound message turns into.
type SlugResult struct {
	Original   string
	Translated string
	Slug       string
	Separator  string
}

// SlugService runs the whole pipeline: look up the user's separator,
// translate, slugify, record history.
type SlugService struct {
	sessions   *SessionService
	translator translate.Translator
	target     string
}

func NewSlugService(sessions *SessionService, translator translate.Translator, target string) *SlugService {
	return &SlugService{sessions: sessions, translator: translator, target: target}
}

// Slugify processes one message for one user. A provider failure returns a
// domain.ErrTranslateFailed wrap and leaves the session (separator and
// history) untouched.
func (s *SlugService) Slugify(ctx context.Context, userID int64, text string) (SlugResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return SlugResult{}, domain.ErrEmptyMessage
	}

	sess, err := s.sessions.GetOrCreate(ctx, userID)
	if err != nil {
		return SlugResult{}, err
	}

	translated, err := s.translator.Translate(ctx, text, translate.SourceAuto, s.target)
	if err != nil {
		metrics.TranslateErrorsTotal.Inc()
		return SlugResult{}, fmt.Errorf("%w: %v", domain.ErrTranslateFailed, err)
	}

	sep := sess.Separator
	if sep == "" {
		// never written by this code, but the backend column is free text
		sep = DefaultSeparator
	}
	out := slug.Make(translated, sep[0])

	if _, err := s.sessions.AppendHistory(ctx, userID, text, out); err != nil {
		return SlugResult{}, err
	}
	metrics.TranslationsTotal.Inc()

	return SlugResult{
		Original:   text,
		Translated: translated,
		Slug:       out,
		Separator:  sep,
	}, nil
}
