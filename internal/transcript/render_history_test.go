package transcript_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"slugbot/internal/transcript"
)

func TestRenderHistory_Aligned(t *testing.T) {
	out := transcript.RenderHistory([]transcript.Entry{
		{Original: "short", Slug: "short"},
		{Original: "a longer headline", Slug: "a-longer-headline"},
	})

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)

	// slug columns start at the same offset
	require.Equal(t,
		strings.LastIndex(lines[0], "short"),
		strings.Index(lines[1], "a-longer-headline"),
	)
}

func TestRenderHistory_TruncatesLongOriginals(t *testing.T) {
	long := strings.Repeat("word ", 20)
	out := transcript.RenderHistory([]transcript.Entry{
		{Original: long, Slug: "s"},
	})

	require.Contains(t, out, "…")
	require.Less(t, strings.Index(out, "  s"), 30)
}

func TestRenderHistory_Empty(t *testing.T) {
	require.Equal(t, "", transcript.RenderHistory(nil))
}

func TestRenderHistory_PreservesOrder(t *testing.T) {
	out := transcript.RenderHistory([]transcript.Entry{
		{Original: "first", Slug: "one"},
		{Original: "second", Slug: "two"},
	})
	require.Less(t, strings.Index(out, "one"), strings.Index(out, "two"))
}
