package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"fieldly/handlers"
)

// RegisterAvailabilityRoutes registers availability and presence endpoints.
func RegisterAvailabilityRoutes(r *gin.Engine, ah *handlers.AvailabilityHandler) {
	api := r.Group("/api/availability")
	{
		api.POST("/status", ah.SetOnlineStatusHandler)
		api.GET("/status/:workerId", ah.GetOnlineStatusHandler)
		api.POST("/day", ah.SetDayAvailabilityHandler)
		api.POST("/check", ah.CheckAvailabilityHandler)
		api.GET("/workers/quick", ah.ListQuickWorkersHandler)
		api.POST("/workers/schedule", ah.ListScheduleWorkersHandler)
	}
}

// RegisterBookingRoutes registers booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	api := r.Group("/api/bookings")
	{
		api.POST("", bh.CreateBookingHandler)
		api.GET("/:id", bh.GetBookingHandler)
		api.GET("/worker/:workerId", bh.ListWorkerBookingsHandler)
		api.GET("/client/:clientId", bh.ListClientBookingsHandler)
		api.POST("/:id/accept", bh.AcceptBookingHandler)
		api.POST("/:id/reject", bh.RejectBookingHandler)
		api.GET("/:id/can-cancel", bh.CanCancelHandler)
		api.POST("/:id/cancel", bh.CancelBookingHandler)
		api.PATCH("/:id/status", bh.UpdateStatusHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Fieldly"})
	})
}

// RegisterRoutes wires CORS and all route groups onto the engine.
func RegisterRoutes(r *gin.Engine, ah *handlers.AvailabilityHandler, bh *handlers.BookingHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAvailabilityRoutes(r, ah)
	RegisterBookingRoutes(r, bh)
}
