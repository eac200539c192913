package translate

import "context"

// SourceAuto asks the backend to detect the source language.
const SourceAuto = "auto"

// Translator is the port for machine-translation backends. Keeping it narrow
// lets the bot swap engines (LibreTranslate, Argos, a test stub) without
// touching the handlers.
type Translator interface {
	// Translate translates text between ISO 639-1 language codes. source
	// may be SourceAuto.
	Translate(ctx context.Context, text, source, target string) (string, error)

	// CheckHealth verifies the backend is reachable and serving.
	CheckHealth(ctx context.Context) error
}
