package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joy095/shareit/config"
	"github.com/joy095/shareit/controllers/booking_controller"
	"github.com/joy095/shareit/controllers/item_controller"
	"github.com/joy095/shareit/middlewares/metrics"
)

// RegisterRoutes registers the API, health and metrics routes.
func RegisterRoutes(r *gin.Engine, bookings booking_controller.BookingService, items item_controller.ItemService, m *metrics.Metrics, cfg config.Config) {
	RegisterBookingRoutes(r, bookings, cfg)
	RegisterItemRoutes(r, items, cfg)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok from shareit service"})
	})
	r.HEAD("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	r.GET("/metrics", gin.WrapH(m.Handler()))
}
