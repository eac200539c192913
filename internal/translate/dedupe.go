package translate

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// Deduped collapses concurrent identical translation requests into a single
// upstream call. Bursts of the same headline (or a retranslate button mashed
// by several users) then cost one provider request.
//
// The first caller's context drives the shared call; later joiners get its
// result even if their own context expires mid-flight.
type Deduped struct {
	next Translator
	g    singleflight.Group
}

func NewDeduped(next Translator) *Deduped {
	return &Deduped{next: next}
}

func (d *Deduped) Translate(ctx context.Context, text, source, target string) (string, error) {
	key := source + "\x00" + target + "\x00" + text
	v, err, _ := d.g.Do(key, func() (any, error) {
		return d.next.Translate(ctx, text, source, target)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (d *Deduped) CheckHealth(ctx context.Context) error {
	return d.next.CheckHealth(ctx)
}
