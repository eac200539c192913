package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"slugbot/internal/bot"
	"slugbot/internal/config"
	"slugbot/internal/httpapi"
	"slugbot/internal/logger"
	"slugbot/internal/repo"
	"slugbot/internal/service"
	"slugbot/internal/translate"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		// config failures happen before the structured logger exists
		log.Fatal(err)
	}

	logg, err := logger.New(cfg.LogDir, cfg.Debug)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store service.Store = repo.NewMemoryStore()
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logg.Fatalw("database connect failed", "err", err)
		}
		defer pool.Close()
		store = repo.NewPostgresStore(pool)
		logg.Infow("session store online", "backend", "postgres")
	} else {
		logg.Infow("session store online", "backend", "memory")
	}

	var tr translate.Translator = translate.NewLibreTranslate(cfg.TranslatorURL, cfg.TranslatorAPIKey, cfg.TranslateTimeout)
	tr = translate.NewDeduped(tr)

	sessions := service.NewSessionService(store, nil)
	slugs := service.NewSlugService(sessions, tr, cfg.TargetLang)

	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		logg.Fatalw("telegram auth failed", "err", err)
	}
	logg.Infow("bot online", "username", api.Self.UserName, "target_lang", cfg.TargetLang)

	b := bot.New(api, sessions, slugs, logg)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httpapi.New(httpapi.Deps{History: sessions, Translator: tr}),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		upd := tgbotapi.NewUpdate(0)
		upd.Timeout = 30
		return b.Run(ctx, api.GetUpdatesChan(upd))
	})

	g.Go(func() error {
		logg.Infow("admin api listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		api.StopReceivingUpdates()

		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logg.Fatalw("exit", "err", err)
	}
	logg.Infow("bye")
}
