// Package item_service serves the item views that carry an owner's booking
// schedule next to the catalog data.
package item_service

import (
	"context"
	"errors"

	"github.com/joy095/shareit/models/booking_models"
	"github.com/joy095/shareit/models/catalog_models"
	"github.com/joy095/shareit/services/booking_service"
	"github.com/joy095/shareit/utils"
)

// Directory is the catalog lookup surface item views are read from.
type Directory interface {
	FindUser(ctx context.Context, id int64) (*catalog_models.User, error)
	FindItem(ctx context.Context, id int64) (*catalog_models.Item, error)
	ListItemsByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]catalog_models.Item, error)
}

// ItemView is an item plus the last and next approved bookings, which are
// only filled in for the owner.
type ItemView struct {
	catalog_models.Item
	booking_service.Projection
}

type Service struct {
	directory Directory
	bookings  booking_models.Store
	clock     utils.Clock
}

func NewService(directory Directory, bookings booking_models.Store, clock utils.Clock) *Service {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	return &Service{directory: directory, bookings: bookings, clock: clock}
}

// GetItem returns the item as seen by actorID.
func (s *Service) GetItem(ctx context.Context, actorID, itemID int64) (*ItemView, error) {
	if err := s.ensureUser(ctx, actorID); err != nil {
		return nil, err
	}

	item, err := s.directory.FindItem(ctx, itemID)
	if errors.Is(err, catalog_models.ErrItemNotFound) {
		return nil, utils.NotFoundf("Item with id = %d doesn't exist", itemID)
	}
	if err != nil {
		return nil, err
	}

	view := &ItemView{Item: *item}
	if item.OwnerID != actorID {
		return view, nil
	}

	approved, err := s.bookings.ListByItems(ctx, []int64{item.ID}, booking_models.StatusApproved)
	if err != nil {
		return nil, err
	}
	view.Projection = booking_service.Project(*item, approved, s.clock.Now(), actorID)
	return view, nil
}

// ListOwnerItems returns one page of the owner's items, each with its
// projection. Bookings for the whole page are loaded in one query.
func (s *Service) ListOwnerItems(ctx context.Context, ownerID int64, from, size int) ([]ItemView, error) {
	offset, limit, err := booking_service.PageWindow(from, size)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUser(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.directory.ListItemsByOwner(ctx, ownerID, offset, limit)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []ItemView{}, nil
	}

	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	approved, err := s.bookings.ListByItems(ctx, ids, booking_models.StatusApproved)
	if err != nil {
		return nil, err
	}

	byItem := make(map[int64][]booking_models.Booking, len(items))
	for _, b := range approved {
		byItem[b.ItemID] = append(byItem[b.ItemID], b)
	}

	now := s.clock.Now()
	views := make([]ItemView, len(items))
	for i, item := range items {
		views[i] = ItemView{
			Item:       item,
			Projection: booking_service.Project(item, byItem[item.ID], now, ownerID),
		}
	}
	return views, nil
}

func (s *Service) ensureUser(ctx context.Context, id int64) error {
	_, err := s.directory.FindUser(ctx, id)
	if errors.Is(err, catalog_models.ErrUserNotFound) {
		return utils.NotFoundf("User with id = %d doesn't exist", id)
	}
	return err
}
