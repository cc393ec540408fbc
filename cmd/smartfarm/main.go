package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/KerryNK/Smart-Farm/internal/config"
	"github.com/KerryNK/Smart-Farm/internal/consumer"
	"github.com/KerryNK/Smart-Farm/internal/engine"
	httpapi "github.com/KerryNK/Smart-Farm/internal/http"
	"github.com/KerryNK/Smart-Farm/internal/logger"
	"github.com/KerryNK/Smart-Farm/internal/mqtt"
	"github.com/KerryNK/Smart-Farm/internal/repository"
	"github.com/KerryNK/Smart-Farm/internal/service"
	"github.com/KerryNK/Smart-Farm/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "smartfarm")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := sql.Open("postgres", cfg.Database.GetDSN())
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	db.SetMaxOpenConns(cfg.Database.MaxConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdle)
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	kv := store.NewRedisKV(redisClient)
	sessions := store.NewSessionStore(kv, cfg.Session.TTL)

	usersRepo := repository.NewPostgresUsersRepository(db)
	readingsRepo := repository.NewPostgresReadingsRepository(db)
	irrigationRepo := repository.NewPostgresIrrigationRepository(db)
	diseasesRepo := repository.NewPostgresDiseasesRepository(db)
	alertsRepo := repository.NewPostgresAlertsRepository(db)
	notificationsRepo := repository.NewPostgresNotificationsRepository(db)
	weatherRepo := repository.NewPostgresWeatherRepository(db)

	evaluator := engine.New(cfg.Rules, log)
	deduper := engine.NewDeduper(alertsRepo, cfg.Rules.DedupWindow)

	authSvc := service.NewAuthService(usersRepo, irrigationRepo, sessions, cfg.Rules, log)
	sensorSvc := service.NewSensorService(readingsRepo, irrigationRepo, diseasesRepo, alertsRepo, notificationsRepo, evaluator, deduper, kv, log)
	irrigationSvc := service.NewIrrigationService(irrigationRepo, notificationsRepo, cfg.Rules, log)
	weatherClient := service.NewWeatherClient(cfg.Weather, log)
	weatherSvc := service.NewWeatherService(usersRepo, weatherRepo, alertsRepo, notificationsRepo, evaluator, deduper, weatherClient, log)
	diseaseSvc := service.NewDiseaseService(diseasesRepo, alertsRepo, log)
	notificationSvc := service.NewNotificationService(notificationsRepo, log)
	simulatorSvc := service.NewSimulatorService(readingsRepo, sensorSvc, log)

	router := httpapi.NewRouter(log)
	router.RegisterRoutes(httpapi.Handlers{
		Auth:          httpapi.NewAuthHandler(authSvc, log),
		Sensors:       httpapi.NewSensorHandler(sensorSvc, log),
		Irrigation:    httpapi.NewIrrigationHandler(irrigationSvc, log),
		Weather:       httpapi.NewWeatherHandler(weatherSvc, log),
		Diseases:      httpapi.NewDiseaseHandler(diseaseSvc, log),
		Notifications: httpapi.NewNotificationHandler(notificationSvc, log),
		Simulator:     httpapi.NewSimulatorHandler(simulatorSvc, log),
	}, httpapi.NewAuthMiddleware(sessions, log))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mqttConsumer *consumer.MQTTConsumer
	if cfg.MQTT.Enabled {
		client, err := mqtt.NewClient(cfg.MQTT, log)
		if err != nil {
			log.Fatal("Failed to connect to MQTT broker", zap.Error(err))
		}
		defer client.Disconnect()

		mqttConsumer = consumer.NewMQTTConsumer(cfg.MQTT, client, sensorSvc, log)
		go func() {
			if err := mqttConsumer.Start(ctx); err != nil {
				log.Error("MQTT consumer stopped with error", zap.Error(err))
			}
		}()
	}

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
	case err := <-errCh:
		log.Error("HTTP server exited", zap.Error(err))
	}
	cancel()

	if mqttConsumer != nil {
		mqttConsumer.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("Shutdown failed", zap.Error(err))
	}
}
