// Package booking_service implements the booking lifecycle: admission of new
// bookings, the owner's approve/reject decision, access-controlled reads, and
// the time-relative list and projection queries built on top of them.
package booking_service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joy095/shareit/logger"
	"github.com/joy095/shareit/models/booking_models"
	"github.com/joy095/shareit/models/catalog_models"
	"github.com/joy095/shareit/utils"
	"github.com/joy095/shareit/utils/locks"
)

// Directory resolves users and items owned by the catalog.
type Directory interface {
	FindUser(ctx context.Context, id int64) (*catalog_models.User, error)
	FindItem(ctx context.Context, id int64) (*catalog_models.Item, error)
}

// NewBooking is a booking request.
type NewBooking struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}

// Service owns the booking state machine and queries.
type Service struct {
	store     booking_models.Store
	directory Directory
	locker    locks.Locker
	clock     utils.Clock
}

func NewService(store booking_models.Store, directory Directory, locker locks.Locker, clock utils.Clock) *Service {
	if locker == nil {
		locker = locks.NewLocalLocker()
	}
	if clock == nil {
		clock = utils.SystemClock{}
	}
	return &Service{store: store, directory: directory, locker: locker, clock: clock}
}

// Create admits a new WAITING booking. Overlap with other bookings of the
// item is not checked here; conflicting requests are settled when the owner
// approves one of them.
func (s *Service) Create(ctx context.Context, bookerID int64, req NewBooking) (*booking_models.BookingDetail, error) {
	item, err := s.findItem(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	booker, err := s.findUser(ctx, bookerID)
	if err != nil {
		return nil, err
	}

	// Reported as not found so callers cannot probe ownership.
	if item.OwnerID == bookerID {
		return nil, utils.NotFoundf("User with id = %d trying to book own item with id = %d", bookerID, item.ID)
	}
	if !item.Available {
		return nil, utils.NotAvailablef("User with id = %d trying to book unavailable item with id = %d", bookerID, item.ID)
	}
	if !req.Start.Before(req.End) {
		return nil, utils.NotAvailablef("Start date of booking must be before end date")
	}

	booking := &booking_models.Booking{
		Start:    req.Start,
		End:      req.End,
		ItemID:   item.ID,
		BookerID: booker.ID,
		Status:   booking_models.StatusWaiting,
	}
	if err := s.store.Create(ctx, booking); err != nil {
		return nil, err
	}

	logger.InfoLogger.Infof("User %d requested item %d for %s - %s (booking %d)",
		bookerID, item.ID, req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339), booking.ID)

	return &booking_models.BookingDetail{Booking: *booking, Item: *item, Booker: *booker}, nil
}

// Decide approves or rejects a WAITING booking on behalf of the item owner.
// Exactly one decision per booking succeeds; approving an interval that
// intersects an already approved booking of the same item is refused.
func (s *Service) Decide(ctx context.Context, actorID, bookingID int64, approved bool) (*booking_models.BookingDetail, error) {
	detail, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if _, err := s.findUser(ctx, actorID); err != nil {
		return nil, err
	}

	if detail.Item.OwnerID != actorID {
		return nil, utils.NotFoundf("User with id = %d doesn't own item with id = %d", actorID, detail.ItemID)
	}
	if detail.Status != booking_models.StatusWaiting {
		return nil, alreadyDecided(actorID, bookingID)
	}

	next := booking_models.StatusRejected
	if approved {
		next = booking_models.StatusApproved

		release, err := s.locker.Acquire(ctx, fmt.Sprintf("item:%d", detail.ItemID))
		if err != nil {
			return nil, fmt.Errorf("failed to lock item %d: %w", detail.ItemID, err)
		}
		defer release()

		overlap, err := s.store.HasOverlap(ctx, detail.ItemID, detail.ID, booking_models.StatusApproved, detail.Start, detail.End)
		if err != nil {
			return nil, err
		}
		if overlap {
			return nil, utils.NotAvailablef("Item with id = %d is already booked for an overlapping period", detail.ItemID)
		}
	}

	updated, err := s.store.UpdateStatus(ctx, detail.ID, detail.Version, booking_models.StatusWaiting, next)
	if errors.Is(err, utils.ErrConflict) {
		return nil, alreadyDecided(actorID, bookingID)
	}
	if err != nil {
		return nil, err
	}

	logger.InfoLogger.Infof("User %d set booking %d to %s", actorID, bookingID, next)

	detail.Booking = *updated
	return detail, nil
}

// Get returns a booking visible to its booker or the item owner.
func (s *Service) Get(ctx context.Context, actorID, bookingID int64) (*booking_models.BookingDetail, error) {
	detail, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if _, err := s.findUser(ctx, actorID); err != nil {
		return nil, err
	}

	if detail.Item.OwnerID != actorID && detail.BookerID != actorID {
		return nil, utils.NotFoundf("User with id = %d doesn't own and hasn't booked item with id = %d", actorID, detail.ItemID)
	}
	return detail, nil
}

func alreadyDecided(actorID, bookingID int64) error {
	return utils.NotAvailablef("User with id = %d trying to decide on booking with id = %d once more time", actorID, bookingID)
}

func (s *Service) findBooking(ctx context.Context, id int64) (*booking_models.BookingDetail, error) {
	detail, err := s.store.GetDetail(ctx, id)
	if errors.Is(err, booking_models.ErrBookingNotFound) {
		return nil, utils.NotFoundf("Booking with id %d doesn't exist", id)
	}
	return detail, err
}

func (s *Service) findUser(ctx context.Context, id int64) (*catalog_models.User, error) {
	user, err := s.directory.FindUser(ctx, id)
	if errors.Is(err, catalog_models.ErrUserNotFound) {
		return nil, utils.NotFoundf("User with id = %d doesn't exist", id)
	}
	return user, err
}

func (s *Service) findItem(ctx context.Context, id int64) (*catalog_models.Item, error) {
	item, err := s.directory.FindItem(ctx, id)
	if errors.Is(err, catalog_models.ErrItemNotFound) {
		return nil, utils.NotFoundf("Item with id = %d doesn't exist", id)
	}
	return item, err
}
