package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"reifenmarkt/handlers"
)

// HandlerBundle groups the handlers the route registrations need.
type HandlerBundle struct {
	SearchHandler   *handlers.SearchHandler
	WorkshopHandler *handlers.WorkshopHandler
}

// RegisterSearchRoutes registers the public search endpoints.
func RegisterSearchRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api")
	{
		api.POST("/search", hb.SearchHandler.Search)
	}
}

// RegisterDirectBookingRoutes registers the widget-facing booking search.
func RegisterDirectBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/direct-booking")
	{
		api.POST("/search", hb.SearchHandler.DirectBookingSearch)
		api.GET("/session/:id", hb.SearchHandler.GetDirectBookingSession)
	}
}

// RegisterWorkshopRoutes registers workshop detail endpoints.
func RegisterWorkshopRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/workshops")
	{
		api.GET("/id/:id", hb.WorkshopHandler.GetWorkshopByID)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthCheck)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterSearchRoutes(r, hb)
	RegisterDirectBookingRoutes(r, hb)
	RegisterWorkshopRoutes(r, hb)
	RegisterHealthRoute(r)
}
