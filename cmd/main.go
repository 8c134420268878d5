// Package main is the entry point for the application
// It initializes all components and starts the HTTP server
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/kindaboxs/meetboxs/config"
	httpDelivery "github.com/kindaboxs/meetboxs/delivery/http"
	"github.com/kindaboxs/meetboxs/domain"
	"github.com/kindaboxs/meetboxs/domain/model"
	pgRepository "github.com/kindaboxs/meetboxs/repository/postgres"
	"github.com/kindaboxs/meetboxs/usecase"

	"github.com/kindaboxs/meetboxs/pkg/jwt"
	"github.com/kindaboxs/meetboxs/pkg/kafka"
	"github.com/kindaboxs/meetboxs/pkg/logger"
	"github.com/kindaboxs/meetboxs/pkg/postgres"
	"github.com/kindaboxs/meetboxs/pkg/redis"
)

func main() {
	// configure logger
	appLogger := logger.NewJSONDefault()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		appLogger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Initialize PostgreSQL client
	postgresClient, err := postgres.NewPostgresClient(postgres.Config{
		Host:            cfg.Infrastructure.Postgres.Host,
		Port:            cfg.Infrastructure.Postgres.Port,
		User:            cfg.Infrastructure.Postgres.User,
		Password:        cfg.Infrastructure.Postgres.Password,
		DBName:          cfg.Infrastructure.Postgres.DBName,
		Schema:          cfg.Infrastructure.Postgres.Schema,
		SSLMode:         cfg.Infrastructure.Postgres.SSLMode,
		MaxIdleConns:    cfg.Infrastructure.Postgres.MaxIdleConns,
		MaxOpenConns:    cfg.Infrastructure.Postgres.MaxOpenConns,
		ConnMaxIdleTime: cfg.Infrastructure.Postgres.ConnMaxIdleTime,
		ConnMaxLifetime: cfg.Infrastructure.Postgres.ConnMaxLifetime,
		Debug:           cfg.Infrastructure.Postgres.Debug,
	})
	if err != nil {
		appLogger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if cfg.Infrastructure.Postgres.IsUseMigrate {
		// Run database migrations
		err = postgresClient.Migrate(
			&model.User{},
			&model.Agent{},
			&model.Meeting{},
		)
		if err != nil {
			appLogger.Error("Failed to migrate database", "error", err)
			os.Exit(1)
		}
	}

	// Initialize Kafka client
	kafkaClient, kafkaErr := kafka.New(
		kafka.WithBrokers(cfg.Infrastructure.Kafka.Brokers...),
		kafka.WithClientID(cfg.Application.Name),
		kafka.WithAllowAutoTopicCreation(),
	)
	if kafkaErr != nil {
		appLogger.Error("Failed to initialize Kafka client", "error", kafkaErr)
		os.Exit(1)
	}

	// Initialize JWT client
	jwtOpts := []jwt.Option{
		jwt.WithAccessTokenSecret(cfg.Security.JWT.AccessTokenSecret),
		jwt.WithRefreshTokenSecret(cfg.Security.JWT.RefreshTokenSecret),
		jwt.WithAccessTokenExpiry(time.Duration(cfg.Security.JWT.AccessTokenExpiry) * time.Minute),
		jwt.WithRefreshTokenExpiry(time.Duration(cfg.Security.JWT.RefreshTokenExpiry) * time.Hour),
	}

	var jwtClient jwt.JWTClient
	var redisClient redis.RedisClient
	if cfg.Security.JWT.Stateful {
		// Stateful mode tracks refresh tokens in Redis so they can be rotated
		// and revoked
		redisClient, err = redis.New(
			redis.WithAddrs(cfg.Infrastructure.Redis.Addrs),
			redis.WithUsername(cfg.Infrastructure.Redis.Username),
			redis.WithPassword(cfg.Infrastructure.Redis.Password),
			redis.WithDB(cfg.Infrastructure.Redis.DB),
			redis.WithPoolSize(cfg.Infrastructure.Redis.PoolSize),
		)
		if err != nil {
			appLogger.Error("Failed to initialize Redis client", "error", err)
			os.Exit(1)
		}
		jwtClient, err = jwt.NewStateful(jwt.NewRedisStore(redisClient), jwtOpts...)
	} else {
		jwtClient, err = jwt.New(jwtOpts...)
	}
	if err != nil {
		appLogger.Error("Failed to initialize JWT client", "error", err)
		os.Exit(1)
	}

	// Pagination bounds applied to every list query
	bounds := domain.PageBounds{
		DefaultPage:     cfg.Pagination.DefaultPage,
		DefaultPageSize: cfg.Pagination.DefaultPageSize,
		MinPageSize:     cfg.Pagination.MinPageSize,
		MaxPageSize:     cfg.Pagination.MaxPageSize,
	}

	// Initialize repositories
	userRepo := pgRepository.NewUserRepository(postgresClient.GetDB(), appLogger)
	agentRepo := pgRepository.NewAgentRepository(postgresClient.GetDB(), appLogger)
	meetingRepo := pgRepository.NewMeetingRepository(postgresClient.GetDB(), appLogger)

	// Initialize usecases
	agentUsecase := usecase.NewAgentUseCase(agentRepo, bounds, appLogger)
	meetingUsecase := usecase.NewMeetingUseCase(meetingRepo, agentRepo, bounds, kafkaClient, cfg.Infrastructure.Kafka.Topics.MeetingEvents, appLogger)
	authUsecase := usecase.NewAuthUseCase(userRepo, jwtClient, appLogger)

	// Initialize handlers
	agentHandler := httpDelivery.NewAgentHandler(agentUsecase, appLogger)
	meetingHandler := httpDelivery.NewMeetingHandler(meetingUsecase, appLogger)
	authHandler := httpDelivery.NewAuthHandler(authUsecase, appLogger)
	healthHandler := httpDelivery.NewHealthHandler(appLogger)

	// Initialize router
	router := httpDelivery.NewRouter(agentHandler, meetingHandler, authHandler, healthHandler, jwtClient, appLogger)
	httpHandler := router.SetupRoutes()

	// Start server
	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Server.Port),
		Handler:      httpHandler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		appLogger.Info("Service starting", "name", cfg.Application.Name, "version", cfg.Application.Version, "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	// Close infrastructure connections
	if err := kafkaClient.Close(); err != nil {
		appLogger.Warn("Error closing Kafka client", "error", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			appLogger.Warn("Error closing Redis client", "error", err)
		}
	}
	if err := postgresClient.Close(); err != nil {
		appLogger.Warn("Error closing database connection", "error", err)
	}

	appLogger.Info("Server exited")
}
