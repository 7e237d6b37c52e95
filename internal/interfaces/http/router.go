package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	bottleServices "github.com/freshvale-inc/freshvale/internal/application/bottle/services"
	bottleUsecases "github.com/freshvale-inc/freshvale/internal/application/bottle/usecases"
	routeUsecases "github.com/freshvale-inc/freshvale/internal/application/route/usecases"
	servUsecases "github.com/freshvale-inc/freshvale/internal/application/serviceability/usecases"
	"github.com/freshvale-inc/freshvale/internal/application/subscription/services"
	subUsecases "github.com/freshvale-inc/freshvale/internal/application/subscription/usecases"
	"github.com/freshvale-inc/freshvale/internal/infrastructure/auth"
	"github.com/freshvale-inc/freshvale/internal/infrastructure/cache"
	"github.com/freshvale-inc/freshvale/internal/infrastructure/config"
	"github.com/freshvale-inc/freshvale/internal/infrastructure/repository"
	"github.com/freshvale-inc/freshvale/internal/interfaces/http/handlers"
	"github.com/freshvale-inc/freshvale/internal/interfaces/http/middleware"
	"github.com/freshvale-inc/freshvale/internal/shared/db"
	"github.com/freshvale-inc/freshvale/internal/shared/logger"
)

// Router represents the HTTP router configuration
type Router struct {
	engine                *gin.Engine
	serviceabilityHandler *handlers.ServiceabilityHandler
	subscriptionHandler   *handlers.SubscriptionHandler
	routeHandler          *handlers.RouteHandler
	bottleHandler         *handlers.BottleHandler
	authMiddleware        *middleware.AuthMiddleware
	allowedOrigins        []string
	log                   logger.Interface
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(gormDB *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	txManager := db.NewTransactionManager(gormDB)

	subscriptionRepo := repository.NewSubscriptionRepository(gormDB, log)
	zoneRepo := repository.NewZoneRepository(gormDB, log)
	overrideRepo := repository.NewZoneOverrideRepository(gormDB, log)
	addressRepo := repository.NewAddressRepository(gormDB, log)
	routeRepo := repository.NewRouteRepository(gormDB, log)
	bottleRepo := repository.NewBottleRepository(gormDB, log)

	var resolutionCache servUsecases.ResolutionCache
	if redisClient != nil {
		resolutionCache = cache.NewRedisZoneResolutionCache(redisClient, log)
	}

	resolveZoneUC := servUsecases.NewResolveZoneUseCase(zoneRepo, overrideRepo, addressRepo, resolutionCache, log)
	zoneDays := services.NewZoneDayService(resolveZoneUC)

	horizonDays := cfg.Delivery.HorizonDays

	getSubUC := subUsecases.NewGetSubscriptionUseCase(subscriptionRepo, log)
	listSubUC := subUsecases.NewListSubscriptionsUseCase(subscriptionRepo, log)
	updateSubUC := subUsecases.NewUpdateSubscriptionUseCase(subscriptionRepo, zoneDays, txManager, horizonDays, log)
	pauseSubUC := subUsecases.NewPauseSubscriptionUseCase(subscriptionRepo, txManager, log)
	resumeSubUC := subUsecases.NewResumeSubscriptionUseCase(subscriptionRepo, zoneDays, txManager, horizonDays, log)
	cancelSubUC := subUsecases.NewCancelSubscriptionUseCase(subscriptionRepo, txManager, log)
	setVacationUC := subUsecases.NewSetVacationUseCase(subscriptionRepo, zoneDays, txManager, horizonDays, log)
	clearVacationUC := subUsecases.NewClearVacationUseCase(subscriptionRepo, zoneDays, txManager, horizonDays, log)
	scheduleUC := subUsecases.NewGetDeliveryScheduleUseCase(subscriptionRepo, zoneDays, log)

	getRouteUC := routeUsecases.NewGetRouteUseCase(routeRepo, log)
	listRoutesUC := routeUsecases.NewListRoutesUseCase(routeRepo, log)
	addStopUC := routeUsecases.NewAddStopUseCase(routeRepo, addressRepo, txManager, log)
	removeStopUC := routeUsecases.NewRemoveStopUseCase(routeRepo, txManager, log)
	moveStopUC := routeUsecases.NewMoveStopUseCase(routeRepo, txManager, log)
	saveSequenceUC := routeUsecases.NewSaveSequenceUseCase(routeRepo, addressRepo, txManager, log)

	bottleIssuer := bottleServices.NewIssuer(bottleRepo, log)
	returnBottlesUC := bottleUsecases.NewReturnBottlesUseCase(subscriptionRepo, bottleRepo, bottleIssuer, txManager, log)

	serviceabilityHandler := handlers.NewServiceabilityHandler(resolveZoneUC, log)
	subscriptionHandler := handlers.NewSubscriptionHandler(
		getSubUC, listSubUC, updateSubUC, pauseSubUC, resumeSubUC, cancelSubUC,
		setVacationUC, clearVacationUC, scheduleUC, log,
	)
	routeHandler := handlers.NewRouteHandler(
		getRouteUC, listRoutesUC, addStopUC, removeStopUC, moveStopUC, saveSequenceUC, log,
	)
	bottleHandler := handlers.NewBottleHandler(returnBottlesUC, log)

	jwtService := auth.NewJWTService(&cfg.Auth.JWT)
	authMiddleware := middleware.NewAuthMiddleware(jwtService, log)

	return &Router{
		engine:                engine,
		serviceabilityHandler: serviceabilityHandler,
		subscriptionHandler:   subscriptionHandler,
		routeHandler:          routeHandler,
		bottleHandler:         bottleHandler,
		authMiddleware:        authMiddleware,
		allowedOrigins:        cfg.Server.AllowedOrigins,
		log:                   log,
	}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(r.log))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(r.allowedOrigins))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.engine.Group("/api/v1")
	v1.Use(r.authMiddleware.RequireAuth())
	{
		v1.GET("/serviceability", r.serviceabilityHandler.CheckServiceability)

		subscriptions := v1.Group("/subscriptions")
		{
			subscriptions.GET("", r.subscriptionHandler.ListSubscriptions)
			subscriptions.GET("/:id", r.subscriptionHandler.GetSubscription)
			subscriptions.PATCH("/:id", r.subscriptionHandler.UpdateSubscription)
			subscriptions.POST("/:id/pause", r.subscriptionHandler.PauseSubscription)
			subscriptions.POST("/:id/resume", r.subscriptionHandler.ResumeSubscription)
			subscriptions.POST("/:id/cancel", r.subscriptionHandler.CancelSubscription)
			subscriptions.PUT("/:id/vacation", r.subscriptionHandler.SetVacation)
			subscriptions.DELETE("/:id/vacation", r.subscriptionHandler.ClearVacation)
			subscriptions.GET("/:id/schedule", r.subscriptionHandler.GetDeliverySchedule)

			// Drivers record doorstep collections through the ops tooling.
			subscriptions.POST("/:id/bottles/return", r.authMiddleware.RequireAdmin(), r.bottleHandler.ReturnBottles)
		}

		routes := v1.Group("/routes")
		routes.Use(r.authMiddleware.RequireAdmin())
		{
			routes.GET("", r.routeHandler.ListRoutes)
			routes.GET("/:id", r.routeHandler.GetRoute)
			routes.POST("/:id/stops", r.routeHandler.AddStop)
			routes.DELETE("/:id/stops", r.routeHandler.RemoveStop)
			routes.POST("/:id/stops/move", r.routeHandler.MoveStop)
			routes.PUT("/:id/sequence", r.routeHandler.SaveSequence)
		}
	}
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
