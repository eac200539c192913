package slug

import "strings"

// Separators holds the characters a user may pick as the word separator.
// Both are also the only non-alphanumeric characters a slug may contain.
const Separators = "-_"

// Make converts translated text into a URL-safe slug.
// Rules:
// - lowercase
// - every space becomes sep
// - everything outside [a-z0-9-_] is dropped
//
// Repeated, leading, and trailing separators are kept as-is. Consumers rely
// on the output being byte-for-byte stable for the same input, so no
// collapsing or trimming happens here.
func Make(text string, sep byte) string {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range strings.ToLower(text) {
		switch {
		case r == ' ':
			b.WriteByte(sep)

		case ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') || r == '-' || r == '_':
			b.WriteByte(byte(r))

		default:
			// drop punctuation, symbols, non-ASCII
		}
	}

	return b.String()
}
