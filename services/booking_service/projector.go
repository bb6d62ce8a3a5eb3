package booking_service

import (
	"time"

	"github.com/joy095/shareit/models/booking_models"
	"github.com/joy095/shareit/models/catalog_models"
)

// Projection is the owner-facing schedule summary of one item.
type Projection struct {
	Last *booking_models.Booking
	Next *booking_models.Booking
}

// Project derives the last started and the next upcoming approved booking of
// item relative to now. Only the owner gets a non-empty projection.
//
// Last is the greatest start before now; Next is the smallest end among
// bookings starting after now. Ties go to the lowest ID.
func Project(item catalog_models.Item, bookings []booking_models.Booking, now time.Time, subjectID int64) Projection {
	var p Projection
	if subjectID != item.OwnerID {
		return p
	}

	for i := range bookings {
		b := &bookings[i]
		if b.ItemID != item.ID || b.Status != booking_models.StatusApproved {
			continue
		}

		switch {
		case b.Start.Before(now):
			if p.Last == nil || b.Start.After(p.Last.Start) || (b.Start.Equal(p.Last.Start) && b.ID < p.Last.ID) {
				p.Last = b
			}
		case b.Start.After(now):
			if p.Next == nil || b.End.Before(p.Next.End) || (b.End.Equal(p.Next.End) && b.ID < p.Next.ID) {
				p.Next = b
			}
		}
	}
	return p
}
