package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	bottleServices "github.com/freshvale-inc/freshvale/internal/application/bottle/services"
	servUsecases "github.com/freshvale-inc/freshvale/internal/application/serviceability/usecases"
	subUsecases "github.com/freshvale-inc/freshvale/internal/application/subscription/usecases"
	"github.com/freshvale-inc/freshvale/internal/infrastructure/adapters"
	"github.com/freshvale-inc/freshvale/internal/infrastructure/cache"
	"github.com/freshvale-inc/freshvale/internal/infrastructure/config"
	"github.com/freshvale-inc/freshvale/internal/infrastructure/database"
	"github.com/freshvale-inc/freshvale/internal/infrastructure/repository"
	"github.com/freshvale-inc/freshvale/internal/infrastructure/scheduler"
	"github.com/freshvale-inc/freshvale/internal/shared/biztime"
	"github.com/freshvale-inc/freshvale/internal/shared/db"
	"github.com/freshvale-inc/freshvale/internal/shared/logger"
)

func main() {
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Logger, env != "production"); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	biztime.MustInit(cfg.Business.Timezone)

	log := logger.NewLogger()
	log.Infow("starting delivery generation worker", "environment", env)

	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalw("failed to initialize database", "error", err)
	}
	defer database.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	var resolutionCache servUsecases.ResolutionCache
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Warnw("redis unavailable, zone resolution cache disabled", "error", err)
	} else {
		log.Infow("redis connection established", "address", cfg.Redis.GetAddr())
		resolutionCache = cache.NewRedisZoneResolutionCache(redisClient, log)
	}

	gormDB := database.Get()
	txManager := db.NewTransactionManager(gormDB)

	subscriptionRepo := repository.NewSubscriptionRepository(gormDB, log)
	zoneRepo := repository.NewZoneRepository(gormDB, log)
	overrideRepo := repository.NewZoneOverrideRepository(gormDB, log)
	addressRepo := repository.NewAddressRepository(gormDB, log)
	bottleRepo := repository.NewBottleRepository(gormDB, log)

	resolveZoneUC := servUsecases.NewResolveZoneUseCase(zoneRepo, overrideRepo, addressRepo, resolutionCache, log)

	orderCreator := adapters.NewLoggingOrderCreator(log)
	bottleIssuer := bottleServices.NewIssuer(bottleRepo, log)
	expirySource := adapters.NewNoopExpirySource()

	generateUC := subUsecases.NewGenerateDailyOrdersUseCase(
		subscriptionRepo,
		resolveZoneUC,
		orderCreator,
		bottleIssuer,
		txManager,
		cfg.Delivery.HorizonDays,
		log,
	)
	expireUC := subUsecases.NewExpireSubscriptionsUseCase(subscriptionRepo, expirySource, txManager, log)

	interval := time.Duration(cfg.Delivery.TickIntervalHours) * time.Hour
	deliveryScheduler := scheduler.NewDeliveryScheduler(
		generateUC,
		expireUC,
		interval,
		cfg.Delivery.GenerationBatchSize,
		log,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deliveryScheduler.Start(ctx)
	log.Infow("delivery scheduler started", "interval", interval)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Infow("shutting down worker...")
	cancel()
	deliveryScheduler.Stop()
	log.Infow("worker exited gracefully")
}
