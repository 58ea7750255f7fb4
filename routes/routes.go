package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"rentwheels/handlers"
	"rentwheels/utils"
)

// RegisterBookingRoutes registers the quote/confirm endpoints of the booking
// engine.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	api := r.Group("/api")
	{
		api.GET("/booking/quote", bh.GetQuote)
		api.POST("/bookings", bh.ConfirmBooking)
		api.POST("/bookings/:id/cancel", bh.CancelBooking)
	}
}

// RegisterPricingRoutes registers read-only rule/promotion views for the
// admin dashboard.
func RegisterPricingRoutes(r *gin.Engine, ph *handlers.PricingHandler) {
	api := r.Group("/api/pricing")
	{
		api.GET("/rules", ph.ListRules)
		api.GET("/promotions", ph.ListPromotions)
	}
}

// RegisterVehicleRoutes registers vehicle reads for the site pages.
func RegisterVehicleRoutes(r *gin.Engine, vh *handlers.VehicleHandler) {
	api := r.Group("/api/vehicles")
	{
		api.GET("/:id", vh.GetVehicle)
		api.GET("/:id/reservations", vh.ListVehicleReservations)
	}
}

// RegisterHealthRoute exposes the service health snapshot.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// SetupRoutes wires CORS and every route group.
func SetupRoutes(r *gin.Engine, bh *handlers.BookingHandler, ph *handlers.PricingHandler, vh *handlers.VehicleHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterBookingRoutes(r, bh)
	RegisterPricingRoutes(r, ph)
	RegisterVehicleRoutes(r, vh)
	RegisterHealthRoute(r)
}
