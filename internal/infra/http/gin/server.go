package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"staybook/internal/infra/config"
	"staybook/internal/infra/obs"
)

type ReservationHTTP interface {
	Start(c *gin.Context)
	Get(c *gin.Context)
	AddItem(c *gin.Context)
	RemoveItem(c *gin.Context)
	Advance(c *gin.Context)
	Abandon(c *gin.Context)
}

type CatalogHTTP interface {
	GetProperty(c *gin.Context)
	ListFacilities(c *gin.Context)
}

type ServiceRequestHTTP interface {
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	ListByBooking(c *gin.Context)
}

type InvoiceHTTP interface {
	Price(c *gin.Context)
}

type Handlers struct {
	Reservation    ReservationHTTP
	Catalog        CatalogHTTP
	ServiceRequest ServiceRequestHTTP
	Invoice        InvoiceHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "X-Session-ID", "Idempotency-Key"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Catalog != nil {
		api.GET("/properties/:id", h.Catalog.GetProperty)
		api.GET("/facilities", h.Catalog.ListFacilities)
	}
	if h.Reservation != nil {
		api.POST("/reservations", h.Reservation.Start)
		api.GET("/reservations/current", h.Reservation.Get)
		api.POST("/reservations/current/items", h.Reservation.AddItem)
		api.DELETE("/reservations/current/items/:ref", h.Reservation.RemoveItem)
		api.POST("/reservations/current/advance", h.Reservation.Advance)
		api.DELETE("/reservations/current", h.Reservation.Abandon)
	}
	if h.ServiceRequest != nil {
		api.POST("/service-requests", h.ServiceRequest.Create)
		api.PUT("/service-requests/:id", h.ServiceRequest.Update)
		api.DELETE("/service-requests/:id", h.ServiceRequest.Delete)
		api.GET("/bookings/:id/service-requests", h.ServiceRequest.ListByBooking)
	}
	if h.Invoice != nil {
		api.POST("/invoices/price", h.Invoice.Price)
	}

	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func configureGinMode(env string) string {
	switch strings.ToLower(env) {
	case "prod", "production":
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	case "test":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	}
}
