package router

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/hotel-reservation/controllers"
	"github.com/yeremiapane/hotel-reservation/events"
	"github.com/yeremiapane/hotel-reservation/middlewares"
	"github.com/yeremiapane/hotel-reservation/services"
	"gorm.io/gorm"
)

// HealthCheck reports whether an optional backing service is reachable.
type HealthCheck func(ctx context.Context) error

type Dependencies struct {
	DB          *gorm.DB
	Service     *services.ReservationService
	Hub         *events.Hub
	Publisher   events.Publisher
	Limiter     *middlewares.RateLimiter
	CORSOrigin  string
	ServiceName string
	// Checks run by /healthz next to the database ping, keyed by component name.
	Checks map[string]HealthCheck
}

func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.CORSMiddlewares(deps.CORSOrigin))
	r.Use(middlewares.SecurityHeaders())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/healthz", healthz(deps))

	if deps.Hub == nil {
		deps.Hub = events.NewHub()
	}
	if deps.Publisher == nil {
		deps.Publisher = deps.Hub
	}
	if deps.Service == nil {
		deps.Service = services.NewReservationService(deps.DB,
			services.WithPublisher(deps.Publisher),
			services.WithProducerName(deps.ServiceName))
	}

	customerCtrl := controllers.NewCustomerController(deps.DB)
	roomCtrl := controllers.NewRoomController(deps.DB, deps.Publisher, deps.ServiceName)
	reservationCtrl := controllers.NewReservationController(deps.Service)
	dashboardCtrl := controllers.NewDashboardController(deps.DB)

	api := r.Group("/api")
	// The event feed is long lived; it sits outside the rate limiter.
	api.GET("/ws", controllers.EventFeedHandler(deps.Hub, deps.CORSOrigin))

	limited := api.Group("")
	if deps.Limiter != nil {
		limited.Use(deps.Limiter.RateLimit())
	}

	customers := limited.Group("/customers")
	{
		customers.GET("", customerCtrl.GetAllCustomers)
		customers.GET("/:id", customerCtrl.GetCustomerByID)
		customers.POST("", customerCtrl.CreateCustomer)
		customers.PUT("/:id", customerCtrl.UpdateCustomer)
		customers.DELETE("/:id", customerCtrl.DeleteCustomer)
	}

	rooms := limited.Group("/rooms")
	{
		rooms.GET("", roomCtrl.GetAllRooms)
		rooms.GET("/:id", roomCtrl.GetRoomByID)
		rooms.POST("", roomCtrl.CreateRoom)
		rooms.PUT("/:id", roomCtrl.UpdateRoom)
		rooms.DELETE("/:id", roomCtrl.DeleteRoom)
	}

	reservations := limited.Group("/reservations")
	{
		reservations.GET("", reservationCtrl.GetAllReservations)
		reservations.GET("/:id", reservationCtrl.GetReservationByID)
		reservations.POST("", reservationCtrl.CreateReservation)
		reservations.PUT("/:id/cancel", reservationCtrl.CancelReservation)
		reservations.DELETE("/:id", reservationCtrl.DeleteReservation)
	}

	limited.GET("/dashboard/stats", dashboardCtrl.GetStats)

	return r
}

func healthz(deps Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		results := gin.H{}
		healthy := true

		sqlDB, err := deps.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		results["database"] = statusOf(err)
		healthy = healthy && err == nil

		names := make([]string, 0, len(deps.Checks))
		for name := range deps.Checks {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			err := deps.Checks[name](ctx)
			results[name] = statusOf(err)
			healthy = healthy && err == nil
		}

		code := http.StatusOK
		if !healthy {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": healthy, "checks": results})
	}
}

func statusOf(err error) string {
	if err != nil {
		return err.Error()
	}
	return "ok"
}
