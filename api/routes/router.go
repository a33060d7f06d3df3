// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"zari/internal/auth"
	"zari/internal/cameras"
	"zari/internal/detection"
	"zari/internal/menus"
	"zari/internal/notifications"
	"zari/internal/reservations"
	"zari/internal/restaurants"
	"zari/internal/seats"
	"zari/internal/session"
	"zari/internal/shared/config"
	"zari/internal/shared/database"
	"zari/internal/shared/middleware"
	"zari/internal/stats"
	"zari/internal/users"
	"zari/pkg/cache"
	"zari/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router builds every feature package and mounts its routes
type Router struct {
	config    *config.Config
	db        *database.DB
	log       *logger.Logger
	publisher notifications.Publisher

	cache    cache.Service
	sessions *session.Manager

	userRepo     users.Repository
	restaurants  restaurants.Service
	menus        menus.Service
	alerts       notifications.Service
	reservations reservations.Service
	cameras      cameras.Service
	monitor      *cameras.Monitor
}

// NewRouter wires the services. publisher carries alerts to the inbox,
// through Kafka or inline.
func NewRouter(cfg *config.Config, db *database.DB, publisher notifications.Publisher, log *logger.Logger) *Router {
	r := &Router{
		config:    cfg,
		db:        db,
		log:       log,
		publisher: publisher,
		cache:     cache.NewService(db.Redis),
		sessions:  session.NewManager(db.Redis, cfg.Redis.SessionTTL, log.WithComponent("session")),
		userRepo:  users.NewRepository(db.PostgreSQL),
	}

	r.restaurants = restaurants.NewService(restaurants.NewRepository(db.PostgreSQL), log.WithComponent("restaurants"))
	r.restaurants.SetCacheService(r.cache)

	r.menus = menus.NewService(menus.NewRepository(db.PostgreSQL), r.restaurants, log.WithComponent("menus"))
	r.menus.SetCacheService(r.cache)

	inbox := notifications.NewInbox(db.Redis, log.WithComponent("alerts"))
	r.alerts = notifications.NewService(inbox, publisher, r.userRepo, log.WithComponent("alerts"))

	r.reservations = reservations.NewService(
		reservations.NewRepository(db.PostgreSQL),
		r.restaurants,
		r.menus,
		r.alerts,
		cfg.Reservation.ReferencePrefix,
		cfg.Reservation.AutoConfirmAfter,
		log.WithComponent("reservations"),
	)
	return r
}

// Reservations is used by the lifecycle sweep
func (r *Router) Reservations() reservations.Service { return r.reservations }

// Cameras is used by the monitor sweep; nil until SetupRoutes ran
func (r *Router) Cameras() cameras.Service { return r.cameras }

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	authMW := middleware.JWTAuthWithConfig(r.config, r.sessions)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		protected := api.Group("", authMW)
		business := api.Group("/business", authMW, middleware.RequireBusiness())
		customer := api.Group("", authMW, middleware.RequireCustomer())

		r.setupAuthRoutes(api, authMW)
		r.setupCatalogRoutes(api, business)
		r.setupMonitorRoutes(api, business, authMW)
		r.setupReservationRoutes(protected, customer, business)
		r.setupStatsRoutes(business)

		notifications.SetupAlertRoutes(protected, notifications.NewController(r.alerts))
	}
}

func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "zari-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "zari-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"kafka":       r.config.Kafka.Enabled,
			"monitor":     r.config.Monitor.Enabled,
			"timestamp":   time.Now(),
		})
	})
}

func (r *Router) setupAuthRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	authService := auth.NewService(r.userRepo, r.sessions, r.config, r.log.WithComponent("auth"))
	auth.NewRouter(auth.NewController(authService), authMW).SetupRoutes(rg)
}

// setupCatalogRoutes mounts restaurants and menus, public and owner side
func (r *Router) setupCatalogRoutes(api, business *gin.RouterGroup) {
	restaurantController := restaurants.NewController(r.restaurants)
	restaurants.SetupRestaurantRoutes(api, restaurantController)
	restaurants.SetupBusinessRoutes(business, restaurantController)

	menuController := menus.NewController(r.menus)
	menus.SetupMenuRoutes(api, menuController)
	menus.SetupBusinessRoutes(business, menuController)
}

// setupMonitorRoutes mounts frame detection, cameras and the detector callback
func (r *Router) setupMonitorRoutes(api, business *gin.RouterGroup, authMW gin.HandlerFunc) {
	regions := detection.GridRegions(detection.MockSeatCount, detection.MockSeatsRow)
	detector := detection.NewService(
		detection.NewMockDetector(r.config.Monitor.DetectorAvailable, nil),
		detection.NewBoxDetector(regions, r.config.Monitor.MinConfidence),
		r.config.Upload.MaxSize,
		r.log.WithComponent("detection"),
	)
	detection.SetupDetectionRoutes(api, detection.NewController(detector, r.config.Upload.MaxSize))

	monitor := cameras.NewMonitor(r.db.Redis, r.config.Redis.SnapshotTTL, r.restaurants, r.log.WithComponent("monitor"))
	r.cameras = cameras.NewService(
		cameras.NewRepository(r.db.PostgreSQL),
		r.restaurants,
		detector,
		monitor,
		r.config.Monitor.ConnectSuccess,
		r.log.WithComponent("cameras"),
	)

	cameraController := cameras.NewController(r.cameras)
	cameras.SetupBusinessRoutes(business, cameraController)
	cameras.SetupIngestRoutes(api.Group("", authMW, middleware.RequireBusiness()), cameraController)

	r.monitor = monitor
}

func (r *Router) setupReservationRoutes(protected, customer, business *gin.RouterGroup) {
	var detections reservations.SeatStatusReader
	if r.monitor != nil {
		detections = r.monitor
	}
	drafts := reservations.NewDraftService(
		reservations.NewDraftStore(r.db.Redis, r.config.Redis.DraftTTL, r.config.Redis.DraftLock),
		r.reservations,
		r.restaurants,
		r.menus,
		detections,
		reservations.DraftConfig{
			Layout:        seats.Layout{Rows: r.config.Reservation.SeatRows, Cols: r.config.Reservation.SeatCols},
			OccupiedRatio: r.config.Reservation.OccupiedRatio,
			SubmitLatency: r.config.Reservation.SubmitLatency,
		},
		r.log,
	)

	controller := reservations.NewController(r.reservations, drafts)
	reservations.SetupReservationRoutes(protected, controller)
	reservations.SetupDraftRoutes(customer, controller)
	reservations.SetupBusinessRoutes(business, controller)
}

func (r *Router) setupStatsRoutes(business *gin.RouterGroup) {
	service := stats.NewService(stats.NewRepository(r.db.PostgreSQL), r.restaurants, r.log)
	service.SetCacheService(r.cache)
	stats.SetupBusinessRoutes(business, stats.NewController(service))
}
