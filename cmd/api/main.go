package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/pixelfeed/backend/internal/config"
	"github.com/pixelfeed/backend/internal/database"
	"github.com/pixelfeed/backend/internal/handler"
	"github.com/pixelfeed/backend/internal/logger"
	"github.com/pixelfeed/backend/internal/middleware"
	"github.com/pixelfeed/backend/internal/repository"
	"github.com/pixelfeed/backend/internal/router"
	"github.com/pixelfeed/backend/internal/server"
	"github.com/pixelfeed/backend/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	loggerService, err := logger.NewLoggerService(cfg)
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg, loggerService)

	ctx := context.Background()
	if err := database.Migrate(ctx, log, cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to run database migrations")
	}

	s, err := server.New(cfg, log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos := repository.NewRepositories(s)

	services, err := service.NewServices(s, repos)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize services")
	}

	handlers := handler.NewHandlers(s, services)
	middlewares := middleware.NewMiddlewares(s, services)

	r := router.New(s, handlers, middlewares)
	s.SetupHTTPServer(r)

	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown did not complete cleanly")
	}
}
