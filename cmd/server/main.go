package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stockview/internal/api"
	"stockview/internal/app"
	"stockview/internal/config"
	"stockview/internal/logger"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "path to config file (optional)")
	flag.Parse()

	logger.Init()
	log := logger.L()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	if cfg.Provider == "alphavantage" && cfg.AlphaVantage.APIKey == "" {
		log.Warn().Msg("provider=alphavantage but ALPHAVANTAGE_API_KEY not set; calls will fail with auth_error")
	}

	f, err := app.BuildFetcher(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("build provider")
	}

	router := api.NewRouter(api.NewHandler(f))
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("provider", cfg.Provider).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
