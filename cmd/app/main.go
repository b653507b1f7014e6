package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"tourdesk/config"
	"tourdesk/internal/auth"
	"tourdesk/internal/bootstrap"
	"tourdesk/internal/cache"
	"tourdesk/internal/kafka"
	"tourdesk/internal/repository"
	"tourdesk/internal/service/booking"
	"tourdesk/internal/service/catalog"
	"tourdesk/internal/service/users"
	"tourdesk/internal/storage"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Catalog.PackagesCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	store := storage.NewDiskStore(cfg.Storage.RootDir, cfg.Storage.BaseURL)
	tokens := auth.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	bookingRepo := repository.NewBookingRepository(pool)
	packageRepo := repository.NewPackageRepository(pool)
	destinationRepo := repository.NewDestinationRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	bookingService := booking.NewBookingService(
		bookingRepo,
		packageRepo,
		userRepo,
		producer,
		cfg.Kafka.BookingTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithStalePendingHours(cfg.Worker.StalePendingHours),
	)
	catalogService := catalog.NewCatalogService(packageRepo, destinationRepo, categoryRepo, store, redisCache)
	userService := users.NewUserService(userRepo, tokens)

	services := bootstrap.Services{
		Bookings: bookingService,
		Catalog:  catalogService,
		Users:    userService,
		Tokens:   tokens,
	}

	if err := bootstrap.Run(ctx, cfg, services); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
