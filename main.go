// Command wordgame serves the word game over HTTP.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgame/internal/config"
	"github.com/robalobadob/wordgame/internal/daily"
	"github.com/robalobadob/wordgame/internal/httpserver"
	"github.com/robalobadob/wordgame/internal/store"
	"github.com/robalobadob/wordgame/internal/telemetry"
	"github.com/robalobadob/wordgame/internal/words"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.OTelEnabled {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("telemetry setup failed; continuing without tracing")
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					log.Warn().Err(err).Msg("telemetry shutdown")
				}
			}()
		}
	}

	pool, err := words.Init(ctx, cfg.WordsOptions())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}

	srv := httpserver.New(store.NewMemoryStore(), httpserver.Options{
		Pool:         pool,
		Source:       words.NewSource(pool, cfg.Rand()),
		Daily:        daily.NewSource(pool, cfg.DailySalt, nil),
		Tokens:       httpserver.NewTokens(cfg.TokenSecret, cfg.TokenTTL),
		WordLength:   cfg.WordLength,
		SessionTTL:   cfg.SessionTTL,
		ClientOrigin: cfg.ClientOrigin,
	})
	log.Info().Str("port", cfg.Port).Msg("starting wordgame server")
	if err := srv.Start(ctx, ":"+cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}
