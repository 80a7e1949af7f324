package main

import (
	"blogboard/internal/api"
	"blogboard/internal/api/handler"
	"blogboard/internal/app/service"
	"blogboard/internal/common/security"
	"blogboard/internal/domain/repository"
	"blogboard/internal/platform/cache"
	"blogboard/internal/platform/config"
	"blogboard/internal/platform/database"
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	// 2. Initialize JWT
	security.InitJWT()

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	logger.Info("database connected")

	// 4. Initialize Redis
	cache.ConnectRedis()
	defer cache.CloseRedis()
	logger.Info("redis connected")

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	postRepo := repository.NewPgPostRepository(database.DB)
	sessionRepo := repository.NewRedisSessionRepository(cache.RDB)

	// 6. Initialize Services
	authService := service.NewAuthService(userRepo, sessionRepo, logger)
	postService := service.NewPostService(postRepo, logger)
	userService := service.NewUserService(userRepo, postRepo)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(
		handler.NewAuthHandler(authService),
		handler.NewPostHandler(postService),
		handler.NewUserHandler(userService),
		sessionRepo,
	)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", zap.String("port", config.AppConfig.APIPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("could not listen", zap.String("port", config.AppConfig.APIPort), zap.Error(err))
		}
	}()

	<-stop // Wait for interrupt signal

	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server shutdown failed", zap.Error(err))
	}

	logger.Info("server stopped gracefully")
}
