package booking_service

import (
	"context"
	"time"

	"github.com/joy095/shareit/models/booking_models"
	"github.com/joy095/shareit/utils"
)

// StateFilter names a list query predicate.
type StateFilter string

const (
	StateAll      StateFilter = "ALL"
	StateCurrent  StateFilter = "CURRENT"
	StatePast     StateFilter = "PAST"
	StateFuture   StateFilter = "FUTURE"
	StateWaiting  StateFilter = "WAITING"
	StateRejected StateFilter = "REJECTED"
)

// criteria narrows q relative to now.
type criteria func(q *booking_models.Query, now time.Time)

var stateFilters = map[StateFilter]criteria{
	StateAll: func(*booking_models.Query, time.Time) {},
	StateCurrent: func(q *booking_models.Query, now time.Time) {
		q.StartBefore = &now
		q.EndAfter = &now
	},
	StatePast: func(q *booking_models.Query, now time.Time) {
		q.EndBefore = &now
	},
	StateFuture: func(q *booking_models.Query, now time.Time) {
		q.StartAfter = &now
	},
	StateWaiting: func(q *booking_models.Query, _ time.Time) {
		q.Status = booking_models.StatusWaiting
	},
	StateRejected: func(q *booking_models.Query, _ time.Time) {
		q.Status = booking_models.StatusRejected
	},
}

// ParseStateFilter matches raw exactly; an empty string means ALL.
func ParseStateFilter(raw string) (StateFilter, error) {
	if raw == "" {
		return StateAll, nil
	}
	f := StateFilter(raw)
	if _, ok := stateFilters[f]; !ok {
		return "", utils.NotAvailablef("Unknown state: UNSUPPORTED_STATUS")
	}
	return f, nil
}

// ListParams selects one page of a subject's bookings.
type ListParams struct {
	SubjectID int64
	Role      booking_models.Role
	State     string
	From      int
	Size      int
}

// PageWindow turns a (from, size) request into an offset and limit.
// `from` selects the page that contains that row: from=5, size=10 yields the
// same page as from=0.
func PageWindow(from, size int) (offset, limit int, err error) {
	if from < 0 {
		return 0, 0, utils.Validationf("from must be zero or positive, got %d", from)
	}
	if size <= 0 {
		return 0, 0, utils.Validationf("size must be positive, got %d", size)
	}
	return (from / size) * size, size, nil
}

// List returns one page of the subject's bookings matching the named state,
// newest start first.
func (s *Service) List(ctx context.Context, p ListParams) ([]booking_models.BookingDetail, error) {
	offset, limit, err := PageWindow(p.From, p.Size)
	if err != nil {
		return nil, err
	}
	filter, err := ParseStateFilter(p.State)
	if err != nil {
		return nil, err
	}
	if _, err := s.findUser(ctx, p.SubjectID); err != nil {
		return nil, err
	}

	q := booking_models.Query{
		SubjectID: p.SubjectID,
		Role:      p.Role,
		Offset:    offset,
		Limit:     limit,
	}
	stateFilters[filter](&q, s.clock.Now())

	return s.store.List(ctx, q)
}
