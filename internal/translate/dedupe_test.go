package translate_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"slugbot/internal/translate"
)

type countingTranslator struct {
	calls atomic.Int64
	delay time.Duration
}

func (c *countingTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	c.calls.Add(1)
	time.Sleep(c.delay)
	return "translated " + text, nil
}

func (c *countingTranslator) CheckHealth(ctx context.Context) error { return nil }

func TestDeduped_CollapsesConcurrentIdenticalCalls(t *testing.T) {
	underlying := &countingTranslator{delay: 50 * time.Millisecond}
	d := translate.NewDeduped(underlying)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := d.Translate(context.Background(), "same text", "auto", "en")
			require.NoError(t, err)
			require.Equal(t, "translated same text", got)
		}()
	}
	wg.Wait()

	require.Equal(t, int64(1), underlying.calls.Load())
}

func TestDeduped_DistinctKeysAreSeparateCalls(t *testing.T) {
	underlying := &countingTranslator{}
	d := translate.NewDeduped(underlying)

	_, err := d.Translate(context.Background(), "one", "auto", "en")
	require.NoError(t, err)
	_, err = d.Translate(context.Background(), "two", "auto", "en")
	require.NoError(t, err)

	require.Equal(t, int64(2), underlying.calls.Load())
}
