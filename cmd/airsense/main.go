package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/Saifr72000/airsense-platform/internal/config"
	"github.com/Saifr72000/airsense-platform/internal/database"
	"github.com/Saifr72000/airsense-platform/internal/display"
	"github.com/Saifr72000/airsense-platform/internal/feed"
	"github.com/Saifr72000/airsense-platform/internal/httpapi"
	"github.com/Saifr72000/airsense-platform/internal/logging"
	"github.com/Saifr72000/airsense-platform/internal/mqtt"
	"github.com/Saifr72000/airsense-platform/internal/repository"
	"github.com/Saifr72000/airsense-platform/internal/service"
	"github.com/Saifr72000/airsense-platform/internal/session"
	"github.com/Saifr72000/airsense-platform/internal/store"
)

func main() {
	cfg := config.Load()

	logger, err := logging.NewLogger(cfg.Log.Level, cfg.Log.Format, "airsense")
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	kv := store.NewRedisKV(redisClient)

	usersRepo := repository.NewPostgresUsersRepo(db)
	buildingsRepo := repository.NewPostgresBuildingsRepo(db)
	roomsRepo := repository.NewPostgresRoomsRepo(db)
	readingsRepo := repository.NewPostgresReadingsRepo(db)

	sessions := session.NewStore(kv, cfg.Session.TTL)

	// 网关实时数据（Node-RED WebSocket）
	feedClient := feed.NewClient(feed.Options{
		URL:                  cfg.Feed.URL,
		AutoConnect:          cfg.Feed.AutoConnect,
		ReconnectInterval:    cfg.Feed.ReconnectInterval,
		MaxReconnectAttempts: cfg.Feed.MaxReconnectAttempts,
	}, logger)
	resolver := display.NewResolver(feedClient, cfg.Feed.SensorID)

	authService := service.NewAuthService(usersRepo, sessions, logger)
	buildingService := service.NewBuildingService(buildingsRepo, roomsRepo, readingsRepo, logger)
	roomService := service.NewRoomService(roomsRepo, buildingsRepo, readingsRepo, resolver, logger)
	ingestService := service.NewIngestService(roomsRepo, readingsRepo, logger)

	router := httpapi.NewRouter(logger)
	router.RegisterAuthRoutes(httpapi.NewAuthHandler(authService, logger))
	router.RegisterBuildingRoutes(httpapi.NewBuildingHandler(buildingService, authService, logger))
	router.RegisterRoomRoutes(httpapi.NewRoomHandler(roomService, authService, logger))
	router.RegisterSensorDataRoutes(httpapi.NewSensorDataHandler(ingestService, logger))
	router.RegisterHealthRoute()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 可选的 MQTT 摄取通道
	var mqttConsumer *mqtt.GatewayConsumer
	if cfg.MQTT.Enabled {
		mqttClient, err := mqtt.NewClient(&cfg.MQTT)
		if err != nil {
			logger.Fatal("failed to connect to MQTT broker", zap.Error(err))
		}
		defer mqttClient.Disconnect()

		mqttConsumer = mqtt.NewGatewayConsumer(&cfg.MQTT, mqttClient, ingestService, logger)
		go func() {
			if err := mqttConsumer.Start(ctx); err != nil {
				logger.Error("MQTT consumer exited", zap.Error(err))
			}
		}()
	}

	srv := service.NewServer(cfg.HTTP.Addr, router, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		cancel()
	case err := <-errCh:
		logger.Error("HTTP server exited", zap.Error(err))
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	if mqttConsumer != nil {
		_ = mqttConsumer.Stop(shutdownCtx)
	}
	feedClient.Disconnect()
}
