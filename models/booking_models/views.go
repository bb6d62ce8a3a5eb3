package booking_models

import (
	"github.com/joy095/shareit/models/catalog_models"
	"github.com/joy095/shareit/models/shared_models"
)

// BookingResponse is the JSON shape of a booking with its item and booker.
type BookingResponse struct {
	ID     int64                   `json:"id"`
	Start  shared_models.Timestamp `json:"start"`
	End    shared_models.Timestamp `json:"end"`
	Status Status                  `json:"status"`
	Item   catalog_models.Item     `json:"item"`
	Booker catalog_models.User     `json:"booker"`
}

// BookingSummary is the short form embedded in item views.
type BookingSummary struct {
	ID       int64                   `json:"id"`
	Start    shared_models.Timestamp `json:"start"`
	End      shared_models.Timestamp `json:"end"`
	BookerID int64                   `json:"bookerId"`
	Status   Status                  `json:"status"`
}

func NewBookingResponse(d BookingDetail) BookingResponse {
	return BookingResponse{
		ID:     d.ID,
		Start:  shared_models.NewTimestamp(d.Start),
		End:    shared_models.NewTimestamp(d.End),
		Status: d.Status,
		Item:   d.Item,
		Booker: d.Booker,
	}
}

func NewBookingResponses(details []BookingDetail) []BookingResponse {
	out := make([]BookingResponse, len(details))
	for i, d := range details {
		out[i] = NewBookingResponse(d)
	}
	return out
}

// NewBookingSummary returns nil for a nil booking.
func NewBookingSummary(b *Booking) *BookingSummary {
	if b == nil {
		return nil
	}
	return &BookingSummary{
		ID:       b.ID,
		Start:    shared_models.NewTimestamp(b.Start),
		End:      shared_models.NewTimestamp(b.End),
		BookerID: b.BookerID,
		Status:   b.Status,
	}
}
