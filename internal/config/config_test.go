package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"slugbot/internal/config"
	"slugbot/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SLUGBOT_TELEGRAM_TOKEN", "123:abc")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "123:abc", cfg.TelegramToken)
	require.Equal(t, "http://localhost:5000", cfg.TranslatorURL)
	require.Equal(t, "en", cfg.TargetLang)
	require.Equal(t, 10*time.Second, cfg.TranslateTimeout)
	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Empty(t, cfg.DatabaseURL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SLUGBOT_TELEGRAM_TOKEN", "123:abc")
	t.Setenv("SLUGBOT_TRANSLATOR_URL", "https://translate.example.com")
	t.Setenv("SLUGBOT_TARGET_LANG", "DE")
	t.Setenv("SLUGBOT_TRANSLATE_TIMEOUT", "3s")
	t.Setenv("SLUGBOT_HTTP_ADDR", ":9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "https://translate.example.com", cfg.TranslatorURL)
	require.Equal(t, "de", cfg.TargetLang)
	require.Equal(t, 3*time.Second, cfg.TranslateTimeout)
	require.Equal(t, ":9090", cfg.HTTPAddr)
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("SLUGBOT_TELEGRAM_TOKEN", "")

	_, err := config.Load()
	require.ErrorIs(t, err, config.ErrMissingToken)
}

func TestLoad_BadTranslatorURL(t *testing.T) {
	t.Setenv("SLUGBOT_TELEGRAM_TOKEN", "123:abc")
	t.Setenv("SLUGBOT_TRANSLATOR_URL", "not a url")

	_, err := config.Load()
	require.Error(t, err)
}

func TestLoad_BadTargetLang(t *testing.T) {
	t.Setenv("SLUGBOT_TELEGRAM_TOKEN", "123:abc")
	t.Setenv("SLUGBOT_TARGET_LANG", "english")

	_, err := config.Load()
	require.ErrorIs(t, err, domain.ErrInvalidLang)
}
