package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"menux/api"
	"menux/bot"
	"menux/config"
	"menux/db"
	"menux/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	setupLogger(cfg)

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		runMigrate(cfg)
		return
	}

	if err := db.Init(cfg.DB); err != nil {
		log.Fatal().Err(err).Msg("db")
	}
	defer db.Close()

	if cfg.AutoMigrate {
		if err := applyMigrations(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("migrate")
		}
	}

	db.InitRedis(cfg.Redis)
	defer db.CloseRedis()

	h := &api.Handler{
		Catalogs: &services.CachedCatalog{Next: services.PGCatalog{}, Client: db.Redis, TTL: cfg.Redis.CatalogTTL},
		Sessions: services.NewSessionStore(db.Redis, cfg.Redis.SessionTTL),
		Cfg:      cfg,
		Throttle: &services.CheckoutThrottle{Client: db.Redis},
	}

	if cfg.Telegram.Token != "" {
		relay, err := bot.NewRelay(cfg.Telegram.Token)
		if err != nil {
			log.Fatal().Err(err).Msg("telegram relay")
		}
		h.Notifier = relay
		go relay.Start()
		defer relay.Stop()
		log.Info().Msg("telegram relay started")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:    ":" + cfg.HTTP.Port,
		Handler: api.NewRouter(h, cfg.HTTP),
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	log.Info().Msg("stopped")
}

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func runMigrate(cfg *config.Config) {
	if err := db.Init(cfg.DB); err != nil {
		log.Fatal().Err(err).Msg("db")
	}
	defer db.Close()

	if err := applyMigrations(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
}
