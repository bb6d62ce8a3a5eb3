package booking_controller

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/joy095/shareit/logger"
	"github.com/joy095/shareit/models/booking_models"
	"github.com/joy095/shareit/models/shared_models"
	"github.com/joy095/shareit/services/booking_service"
	"github.com/joy095/shareit/utils"
)

// BookingService is the booking_service surface the controller needs.
type BookingService interface {
	Create(ctx context.Context, bookerID int64, req booking_service.NewBooking) (*booking_models.BookingDetail, error)
	Decide(ctx context.Context, actorID, bookingID int64, approved bool) (*booking_models.BookingDetail, error)
	Get(ctx context.Context, actorID, bookingID int64) (*booking_models.BookingDetail, error)
	List(ctx context.Context, p booking_service.ListParams) ([]booking_models.BookingDetail, error)
}

// BookingController holds dependencies for booking operations.
type BookingController struct {
	Service        BookingService
	Clock          utils.Clock
	BookerPageSize int
	OwnerPageSize  int
}

// NewBookingController creates a new instance of BookingController.
func NewBookingController(service BookingService, bookerPageSize, ownerPageSize int) *BookingController {
	return &BookingController{
		Service:        service,
		Clock:          utils.SystemClock{Location: shared_models.Location},
		BookerPageSize: bookerPageSize,
		OwnerPageSize:  ownerPageSize,
	}
}

// CreateBookingRequest is the body of POST /bookings.
type CreateBookingRequest struct {
	ItemID int64  `json:"itemId" binding:"required,gt=0"`
	Start  string `json:"start" binding:"required,timestamp"`
	End    string `json:"end" binding:"required,timestamp"`
}

// Create books an item for the caller. The booking starts out WAITING.
func (bc *BookingController) Create(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.BindingError(err))
		return
	}

	// Both already passed the timestamp tag.
	start, _ := shared_models.ParseTimestamp(req.Start)
	end, _ := shared_models.ParseTimestamp(req.End)

	now := bc.Clock.Now()
	if !start.After(now) {
		utils.RespondError(c, utils.Validationf("Start date of booking must be in the future"))
		return
	}
	if !end.After(now) {
		utils.RespondError(c, utils.Validationf("End date of booking must be in the future"))
		return
	}

	logger.InfoLogger.Infof("Creating booking of item %d, userId=%d", req.ItemID, userID)

	detail, err := bc.Service.Create(c.Request.Context(), userID, booking_service.NewBooking{
		ItemID: req.ItemID,
		Start:  start,
		End:    end,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking_models.NewBookingResponse(*detail))
}

// Decide approves or rejects a booking: PATCH /bookings/:id?approved=true|false.
func (bc *BookingController) Decide(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	bookingID, err := utils.ParamID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	raw, ok := c.GetQuery("approved")
	if !ok {
		utils.RespondError(c, utils.Validationf("Required parameter 'approved' is not present"))
		return
	}
	approved, err := strconv.ParseBool(raw)
	if err != nil {
		utils.RespondError(c, utils.Validationf("Invalid approved: %q", raw))
		return
	}

	logger.InfoLogger.Infof("User with id = %d trying to update status of booking with id = %d", userID, bookingID)

	detail, err := bc.Service.Decide(c.Request.Context(), userID, bookingID, approved)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking_models.NewBookingResponse(*detail))
}

// Get returns one booking to its booker or the item owner.
func (bc *BookingController) Get(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	bookingID, err := utils.ParamID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	detail, err := bc.Service.Get(c.Request.Context(), userID, bookingID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking_models.NewBookingResponse(*detail))
}

// ListByBooker lists the caller's own bookings: GET /bookings?state=&from=&size=.
func (bc *BookingController) ListByBooker(c *gin.Context) {
	bc.list(c, booking_models.RoleBooker, bc.BookerPageSize)
}

// ListByOwner lists bookings of the caller's items: GET /bookings/owner?state=&from=&size=.
func (bc *BookingController) ListByOwner(c *gin.Context) {
	bc.list(c, booking_models.RoleOwner, bc.OwnerPageSize)
}

func (bc *BookingController) list(c *gin.Context, role booking_models.Role, defaultSize int) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	from, size, err := utils.PageQuery(c, defaultSize)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	state := c.DefaultQuery("state", string(booking_service.StateAll))

	logger.InfoLogger.Infof("Get bookings as %s with state %s, userId=%d, from=%d, size=%d", role, state, userID, from, size)

	details, err := bc.Service.List(c.Request.Context(), booking_service.ListParams{
		SubjectID: userID,
		Role:      role,
		State:     state,
		From:      from,
		Size:      size,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking_models.NewBookingResponses(details))
}
