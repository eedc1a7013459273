package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	server "travel_agent/internal/adapters/http_server"
	"travel_agent/internal/adapters/llm"
	"travel_agent/internal/adapters/observability"
	"travel_agent/internal/adapters/openweather"
	redisad "travel_agent/internal/adapters/redis"
	"travel_agent/internal/app"
	"travel_agent/internal/domain"
	"travel_agent/internal/shared"
	"travel_agent/internal/storage/csvdata"
)

func main() {
	_ = godotenv.Load()
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// data
	store, err := csvdata.Load(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("loading travel dataset failed")
	}
	locations, activities, accommodations, transports := store.Counts()
	log.Info().
		Int("locations", locations).
		Int("activities", activities).
		Int("accommodations", accommodations).
		Int("transports", transports).
		Msg("travel dataset loaded")

	// weather provider; without a key the service serves placeholder summaries
	var provider domain.WeatherProvider
	if cfg.OpenWeatherKey != "" {
		ow, err := openweather.New(cfg.OpenWeatherBase, cfg.OpenWeatherKey, cfg.WeatherRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("openweather client failed")
		}
		provider = ow
	} else {
		log.Warn().Msg("OPENWEATHER_API_KEY is empty, weather runs in placeholder mode")
	}

	// optional report cache
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rc.Ping(pingCtx); err != nil {
			log.Fatal().Err(err).Msg("redis ping failed")
		}
		cancel()
		cache = rc
		log.Info().Str("addr", cfg.RedisAddr).Msg("redis cache enabled")
	}

	// services
	model := llm.New(llm.Options{
		APIKey:     cfg.OpenAIKey,
		BaseURL:    cfg.OpenAIBase,
		APIVersion: cfg.OpenAIAPIVersion,
		Model:      cfg.Model,
	})
	weather := app.NewWeatherService(store, provider, cache, cfg.CacheTTL)
	chat := app.NewChatService(store, model, weather, cfg.SnapshotSize)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Chat: chat})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("shutdown complete")
}
