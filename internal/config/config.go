// Package config builds one immutable Config from the environment.
//
// Precedence (highest last): optional .env file, then SLUGBOT_-prefixed
// environment variables (SLUGBOT_TELEGRAM_TOKEN, SLUGBOT_TRANSLATOR_URL, …).
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/knadh/koanf/providers/env"
	koanf "github.com/knadh/koanf/v2"

	"slugbot/internal/validate"
)

const envPrefix = "SLUGBOT_"

var ErrMissingToken = errors.New("telegram token not set")

type Config struct {
	// TelegramToken is the only required setting; the process refuses to
	// start without it.
	TelegramToken string

	// TranslatorURL points at a LibreTranslate-compatible endpoint.
	TranslatorURL    string
	TranslatorAPIKey string
	TargetLang       string
	TranslateTimeout time.Duration

	// DatabaseURL switches the session store from in-memory to Postgres
	// when set.
	DatabaseURL string

	HTTPAddr string
	LogDir   string
	Debug    bool
}

// Load reads SLUGBOT_* environment variables, applies defaults, and
// validates. Callers load .env beforehand if they want file-based settings.
func Load() (Config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return Config{}, fmt.Errorf("config: env overlay: %w", err)
	}

	cfg := Config{
		TelegramToken:    strings.TrimSpace(k.String("telegram_token")),
		TranslatorURL:    strings.TrimSpace(k.String("translator_url")),
		TranslatorAPIKey: strings.TrimSpace(k.String("translator_api_key")),
		TargetLang:       k.String("target_lang"),
		TranslateTimeout: k.Duration("translate_timeout"),
		DatabaseURL:      strings.TrimSpace(k.String("database_url")),
		HTTPAddr:         strings.TrimSpace(k.String("http_addr")),
		LogDir:           strings.TrimSpace(k.String("log_dir")),
		Debug:            k.Bool("debug"),
	}

	if cfg.TranslatorURL == "" {
		cfg.TranslatorURL = "http://localhost:5000"
	}
	if cfg.TargetLang == "" {
		cfg.TargetLang = "en"
	}
	if cfg.TranslateTimeout <= 0 {
		cfg.TranslateTimeout = 10 * time.Second
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	if cfg.TelegramToken == "" {
		return Config{}, ErrMissingToken
	}
	if !govalidator.IsURL(cfg.TranslatorURL) {
		return Config{}, fmt.Errorf("config: translator_url %q is not a URL", cfg.TranslatorURL)
	}

	lang, err := validate.NormalizeLang(cfg.TargetLang)
	if err != nil {
		return Config{}, fmt.Errorf("config: target_lang %q: %w", cfg.TargetLang, err)
	}
	cfg.TargetLang = lang

	return cfg, nil
}
