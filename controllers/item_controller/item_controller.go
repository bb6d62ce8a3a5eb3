package item_controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joy095/shareit/logger"
	"github.com/joy095/shareit/models/booking_models"
	"github.com/joy095/shareit/services/item_service"
	"github.com/joy095/shareit/utils"
)

type ItemService interface {
	GetItem(ctx context.Context, actorID, itemID int64) (*item_service.ItemView, error)
	ListOwnerItems(ctx context.Context, ownerID int64, from, size int) ([]item_service.ItemView, error)
}

// ItemController serves the read side of items with their booking schedule.
type ItemController struct {
	Service  ItemService
	PageSize int
}

func NewItemController(service ItemService, pageSize int) *ItemController {
	return &ItemController{Service: service, PageSize: pageSize}
}

// ItemResponse is an item with the owner-only last/next bookings; both are
// null for everyone else.
type ItemResponse struct {
	ID          int64                          `json:"id"`
	Name        string                         `json:"name"`
	Description string                         `json:"description"`
	Available   bool                           `json:"available"`
	RequestID   *int64                         `json:"requestId,omitempty"`
	LastBooking *booking_models.BookingSummary `json:"lastBooking"`
	NextBooking *booking_models.BookingSummary `json:"nextBooking"`
}

func newItemResponse(v item_service.ItemView) ItemResponse {
	return ItemResponse{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Available:   v.Available,
		RequestID:   v.RequestID,
		LastBooking: booking_models.NewBookingSummary(v.Last),
		NextBooking: booking_models.NewBookingSummary(v.Next),
	}
}

// GetItem handles GET /items/:id.
func (ic *ItemController) GetItem(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	itemID, err := utils.ParamID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	view, err := ic.Service.GetItem(c.Request.Context(), userID, itemID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newItemResponse(*view))
}

// ListItems handles GET /items?from=&size=, the caller's own items.
func (ic *ItemController) ListItems(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	from, size, err := utils.PageQuery(c, ic.PageSize)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	logger.InfoLogger.Infof("Get items of owner %d, from=%d, size=%d", userID, from, size)

	views, err := ic.Service.ListOwnerItems(c.Request.Context(), userID, from, size)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	out := make([]ItemResponse, len(views))
	for i, v := range views {
		out[i] = newItemResponse(v)
	}
	c.JSON(http.StatusOK, out)
}
