package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/joy095/shareit/config"
	"github.com/joy095/shareit/controllers/booking_controller"
	middleware "github.com/joy095/shareit/middlewares"
	"github.com/joy095/shareit/middlewares/sharer"
)

// RegisterBookingRoutes registers all booking-related routes.
func RegisterBookingRoutes(router *gin.Engine, service booking_controller.BookingService, cfg config.Config) {
	bookingController := booking_controller.NewBookingController(service, cfg.BookerPageSize, cfg.OwnerPageSize)

	bookings := router.Group("/bookings")
	bookings.Use(sharer.SharerMiddleware())
	{
		bookings.POST("",
			middleware.NewRateLimiter(cfg.RateLimit, "create-booking"),
			bookingController.Create)

		bookings.PATCH("/:id",
			middleware.NewRateLimiter(cfg.RateLimit, "decide-booking"),
			bookingController.Decide)

		bookings.GET("", bookingController.ListByBooker)
		bookings.GET("/owner", bookingController.ListByOwner)
		bookings.GET("/:id", bookingController.Get)
	}
}
