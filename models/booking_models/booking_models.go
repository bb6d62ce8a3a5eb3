package booking_models

import (
	"context"
	"errors"
	"time"

	"github.com/joy095/shareit/models/catalog_models"
)

// Status is the approval state of a booking.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	StatusCanceled Status = "CANCELED"
)

var ErrBookingNotFound = errors.New("booking not found")

// Booking is a stored reservation row.
type Booking struct {
	ID        int64
	Start     time.Time
	End       time.Time
	ItemID    int64
	BookerID  int64
	Status    Status
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookingDetail is a booking joined with its item and booker.
type BookingDetail struct {
	Booking
	Item   catalog_models.Item
	Booker catalog_models.User
}

// Role selects which side of a booking a list query is asked from.
type Role int

const (
	RoleBooker Role = iota
	RoleOwner
)

func (r Role) String() string {
	if r == RoleOwner {
		return "owner"
	}
	return "booker"
}

// Query is a conjunction of criteria over one subject's bookings. Nil
// bounds and an empty Status are unconstrained; bounds are strict.
type Query struct {
	SubjectID int64
	Role      Role

	Status      Status
	StartBefore *time.Time
	StartAfter  *time.Time
	EndBefore   *time.Time
	EndAfter    *time.Time

	Offset int
	Limit  int
}

// Store persists bookings.
type Store interface {
	// Create inserts b and fills in ID, Version and timestamps.
	Create(ctx context.Context, b *Booking) error

	// GetDetail returns the booking joined with its item and booker, or
	// ErrBookingNotFound.
	GetDetail(ctx context.Context, id int64) (*BookingDetail, error)

	// UpdateStatus moves the booking from `from` to `to` only if it still has
	// that status and version. A lost race returns utils.ErrConflict.
	UpdateStatus(ctx context.Context, id, version int64, from, to Status) (*Booking, error)

	// HasOverlap reports whether another booking of the item with the given
	// status intersects [start, end).
	HasOverlap(ctx context.Context, itemID, excludeID int64, status Status, start, end time.Time) (bool, error)

	// List returns the subject's bookings matching q, newest start first.
	List(ctx context.Context, q Query) ([]BookingDetail, error)

	// ListByItems returns bookings of the given items with the given status,
	// ordered by start ascending.
	ListByItems(ctx context.Context, itemIDs []int64, status Status) ([]Booking, error)
}
