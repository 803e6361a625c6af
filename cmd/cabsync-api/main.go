// README: Entry point; loads config, wires the Rapido quote pipeline and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cabsync/internal/config"
	httptransport "cabsync/internal/http"
	"cabsync/internal/http/handlers"
	"cabsync/internal/infra"
	"cabsync/internal/maps"
	"cabsync/internal/modules/rapido"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		infra.NewLogger("info").WithError(err).Fatal("config load")
	}
	log := infra.NewLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.WithError(err).Fatal("postgres init")
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	defer redisClient.Close()

	payloadStore := rapido.NewPayloadStore(dbPool)
	deps := rapido.ServiceDeps{
		Fetcher:  rapido.NewClient(cfg.Rapido.URL, cfg.Rapido.DeviceID, cfg.Rapido.Timeout),
		Cache:    rapido.NewQuoteCache(redisClient, cfg.Rapido.QuoteTTL),
		Payloads: payloadStore,
		Logger:   log,
	}
	if cfg.Maps.APIKey != "" {
		routes, err := maps.NewRouteService(cfg.Maps.APIKey)
		if err != nil {
			log.WithError(err).Fatal("maps init")
		}
		deps.Trips = routes
	} else {
		log.Info("CABSYNC_MAPS_API_KEY not set; using straight-line trip estimates")
		deps.Trips = maps.StraightLine{}
	}

	var verifier infra.TokenVerifier
	if cfg.Firebase.ProjectID != "" {
		verifier, err = infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
		if err != nil {
			log.WithError(err).Fatal("firebase init")
		}
	} else {
		log.Warn("CABSYNC_FIREBASE_PROJECT_ID not set; API is unauthenticated")
	}

	var payloads handlers.PayloadLister = payloadStore
	handler := httptransport.NewServer(httptransport.ServerDeps{
		Rapido:   rapido.NewService(deps),
		Payloads: payloads,
		Verifier: verifier,
		Logger:   log,
		Timeout:  cfg.Rapido.Timeout + 5*time.Second,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler.Routes(), ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("shutdown")
		}
	}()

	log.WithField("addr", cfg.HTTP.Addr).Info("cabsync listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("http server")
	}
}
