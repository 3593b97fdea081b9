package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Chat/internal/adapters/tcp"
	"github.com/dkeye/Chat/internal/app"
	"github.com/dkeye/Chat/internal/app/orch"
	"github.com/dkeye/Chat/internal/config"
	statushttp "github.com/dkeye/Chat/internal/transport/http"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	// Human-friendly output for terminal; in production you may want JSON only.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	directory := app.NewDirectory()
	rooms := app.NewRoomManager()
	registry := app.NewRegistry()
	orchestrator := orch.New(directory, rooms)

	server := tcp.NewServer(cfg, orchestrator, registry)
	if err := server.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start chat server")
	}

	var statusSrv *http.Server
	if cfg.StatusPort > 0 {
		statusSrv = &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.StatusPort),
			Handler: statushttp.SetupRouter(directory, rooms),
		}
		go func() {
			log.Info().Str("addr", statusSrv.Addr).Msg("status endpoint started")
			if err := statusSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("status endpoint error")
			}
		}()
	}

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer shutdownCancel()
	server.Stop(shutdownCtx)

	if statusSrv != nil {
		httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer httpCancel()
		if err := statusSrv.Shutdown(httpCtx); err != nil {
			log.Error().Err(err).Msg("status endpoint forced to shutdown")
		}
	}
	log.Info().Msg("Server exited gracefully")
}
