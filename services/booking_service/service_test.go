package booking_service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/joy095/shareit/logger"
	"github.com/joy095/shareit/models/booking_models"
	"github.com/joy095/shareit/utils"
	"github.com/joy095/shareit/utils/locks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ownerID    int64 = 1
	bookerID   int64 = 2
	strangerID int64 = 3

	drillID  int64 = 10
	brokenID int64 = 11
	ladderID int64 = 12
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc   *Service
	store *fakeStore
	dir   *fakeDirectory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger.Discard()

	dir := newFakeDirectory()
	dir.addUser(ownerID, "owner")
	dir.addUser(bookerID, "booker")
	dir.addUser(strangerID, "stranger")
	dir.addItem(drillID, ownerID, "Drill", true)
	dir.addItem(brokenID, ownerID, "Broken saw", false)
	dir.addItem(ladderID, strangerID, "Ladder", true)

	store := newFakeStore(dir)
	svc := NewService(store, dir, locks.NewLocalLocker(), utils.FixedClock{T: now})
	return &fixture{svc: svc, store: store, dir: dir}
}

func (f *fixture) seed(itemID, booker int64, start, end time.Duration, status booking_models.Status) booking_models.Booking {
	return f.store.put(booking_models.Booking{
		Start:    now.Add(start),
		End:      now.Add(end),
		ItemID:   itemID,
		BookerID: booker,
		Status:   status,
	})
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("AvailableItemIsBookedAsWaiting", func(t *testing.T) {
		f := newFixture(t)

		got, err := f.svc.Create(ctx, bookerID, NewBooking{ItemID: drillID, Start: now.Add(time.Hour), End: now.Add(2 * time.Hour)})
		require.NoError(t, err)

		assert.NotZero(t, got.ID)
		assert.Equal(t, booking_models.StatusWaiting, got.Status)
		assert.Equal(t, "Drill", got.Item.Name)
		assert.Equal(t, "booker", got.Booker.Name)
		assert.True(t, got.Start.Before(got.End))
	})

	t.Run("OwnItemIsNotFound", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(ctx, ownerID, NewBooking{ItemID: drillID, Start: now.Add(time.Hour), End: now.Add(2 * time.Hour)})
		assert.ErrorIs(t, err, utils.ErrNotFound)
		assert.Empty(t, f.store.bookings)
	})

	t.Run("UnavailableItem", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(ctx, bookerID, NewBooking{ItemID: brokenID, Start: now.Add(time.Hour), End: now.Add(2 * time.Hour)})
		assert.ErrorIs(t, err, utils.ErrNotAvailable)
	})

	t.Run("StartMustPrecedeEnd", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(ctx, bookerID, NewBooking{ItemID: drillID, Start: now.Add(time.Hour), End: now.Add(time.Hour)})
		assert.ErrorIs(t, err, utils.ErrNotAvailable)

		_, err = f.svc.Create(ctx, bookerID, NewBooking{ItemID: drillID, Start: now.Add(2 * time.Hour), End: now.Add(time.Hour)})
		assert.ErrorIs(t, err, utils.ErrNotAvailable)
		assert.Empty(t, f.store.bookings)
	})

	t.Run("UnknownItem", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(ctx, bookerID, NewBooking{ItemID: 404, Start: now.Add(time.Hour), End: now.Add(2 * time.Hour)})
		assert.ErrorIs(t, err, utils.ErrNotFound)
	})

	t.Run("UnknownBooker", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(ctx, 404, NewBooking{ItemID: drillID, Start: now.Add(time.Hour), End: now.Add(2 * time.Hour)})
		assert.ErrorIs(t, err, utils.ErrNotFound)
	})

	t.Run("OverlappingRequestsAreBothAccepted", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(ctx, bookerID, NewBooking{ItemID: drillID, Start: now.Add(time.Hour), End: now.Add(3 * time.Hour)})
		require.NoError(t, err)
		_, err = f.svc.Create(ctx, strangerID, NewBooking{ItemID: drillID, Start: now.Add(2 * time.Hour), End: now.Add(4 * time.Hour)})
		require.NoError(t, err)
		assert.Len(t, f.store.bookings, 2)
	})
}

func TestDecide(t *testing.T) {
	ctx := context.Background()

	t.Run("ApproveOnceThenAlwaysFails", func(t *testing.T) {
		f := newFixture(t)
		b := f.seed(drillID, bookerID, time.Hour, 2*time.Hour, booking_models.StatusWaiting)

		got, err := f.svc.Decide(ctx, ownerID, b.ID, true)
		require.NoError(t, err)
		assert.Equal(t, booking_models.StatusApproved, got.Status)
		assert.Equal(t, "Drill", got.Item.Name)

		_, err = f.svc.Decide(ctx, ownerID, b.ID, true)
		assert.ErrorIs(t, err, utils.ErrNotAvailable)
		_, err = f.svc.Decide(ctx, ownerID, b.ID, false)
		assert.ErrorIs(t, err, utils.ErrNotAvailable)

		assert.Equal(t, booking_models.StatusApproved, f.store.bookings[b.ID].Status)
	})

	t.Run("Reject", func(t *testing.T) {
		f := newFixture(t)
		b := f.seed(drillID, bookerID, time.Hour, 2*time.Hour, booking_models.StatusWaiting)

		got, err := f.svc.Decide(ctx, ownerID, b.ID, false)
		require.NoError(t, err)
		assert.Equal(t, booking_models.StatusRejected, got.Status)
	})

	t.Run("OnlyOwnerMayDecide", func(t *testing.T) {
		f := newFixture(t)
		b := f.seed(drillID, bookerID, time.Hour, 2*time.Hour, booking_models.StatusWaiting)

		_, err := f.svc.Decide(ctx, bookerID, b.ID, true)
		assert.ErrorIs(t, err, utils.ErrNotFound)
		_, err = f.svc.Decide(ctx, strangerID, b.ID, true)
		assert.ErrorIs(t, err, utils.ErrNotFound)
		assert.Equal(t, booking_models.StatusWaiting, f.store.bookings[b.ID].Status)
	})

	t.Run("UnknownBooking", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Decide(ctx, ownerID, 999, true)
		assert.ErrorIs(t, err, utils.ErrNotFound)
	})

	t.Run("CanceledIsNotDecidable", func(t *testing.T) {
		f := newFixture(t)
		b := f.seed(drillID, bookerID, time.Hour, 2*time.Hour, booking_models.StatusCanceled)

		_, err := f.svc.Decide(ctx, ownerID, b.ID, true)
		assert.ErrorIs(t, err, utils.ErrNotAvailable)
	})

	t.Run("FirstApprovedWins", func(t *testing.T) {
		f := newFixture(t)
		first := f.seed(drillID, bookerID, time.Hour, 3*time.Hour, booking_models.StatusWaiting)
		second := f.seed(drillID, strangerID, 2*time.Hour, 4*time.Hour, booking_models.StatusWaiting)

		_, err := f.svc.Decide(ctx, ownerID, first.ID, true)
		require.NoError(t, err)

		_, err = f.svc.Decide(ctx, ownerID, second.ID, true)
		assert.ErrorIs(t, err, utils.ErrNotAvailable)

		// The loser can still be rejected.
		got, err := f.svc.Decide(ctx, ownerID, second.ID, false)
		require.NoError(t, err)
		assert.Equal(t, booking_models.StatusRejected, got.Status)
	})

	t.Run("AdjacentApprovalsAllowed", func(t *testing.T) {
		f := newFixture(t)
		first := f.seed(drillID, bookerID, time.Hour, 2*time.Hour, booking_models.StatusWaiting)
		second := f.seed(drillID, strangerID, 2*time.Hour, 3*time.Hour, booking_models.StatusWaiting)

		_, err := f.svc.Decide(ctx, ownerID, first.ID, true)
		require.NoError(t, err)
		_, err = f.svc.Decide(ctx, ownerID, second.ID, true)
		require.NoError(t, err)
	})

	t.Run("ConcurrentDecisionsSucceedOnce", func(t *testing.T) {
		f := newFixture(t)
		b := f.seed(drillID, bookerID, time.Hour, 2*time.Hour, booking_models.StatusWaiting)

		var successes, rejections int32
		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func(approve bool) {
				defer wg.Done()
				_, err := f.svc.Decide(ctx, ownerID, b.ID, approve)
				switch {
				case err == nil:
					atomic.AddInt32(&successes, 1)
				case assert.ErrorIs(t, err, utils.ErrNotAvailable):
					atomic.AddInt32(&rejections, 1)
				}
			}(i%2 == 0)
		}
		wg.Wait()

		assert.Equal(t, int32(1), successes)
		assert.Equal(t, int32(15), rejections)
	})
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	b := f.seed(drillID, bookerID, time.Hour, 2*time.Hour, booking_models.StatusWaiting)

	t.Run("Booker", func(t *testing.T) {
		got, err := f.svc.Get(ctx, bookerID, b.ID)
		require.NoError(t, err)
		assert.Equal(t, b.ID, got.ID)
	})

	t.Run("Owner", func(t *testing.T) {
		got, err := f.svc.Get(ctx, ownerID, b.ID)
		require.NoError(t, err)
		assert.Equal(t, b.ID, got.ID)
	})

	t.Run("ThirdPartySeesNothing", func(t *testing.T) {
		_, err := f.svc.Get(ctx, strangerID, b.ID)
		assert.ErrorIs(t, err, utils.ErrNotFound)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := f.svc.Get(ctx, ownerID, b.ID+100)
		assert.ErrorIs(t, err, utils.ErrNotFound)
	})

	t.Run("UnknownActor", func(t *testing.T) {
		_, err := f.svc.Get(ctx, 404, b.ID)
		assert.ErrorIs(t, err, utils.ErrNotFound)
	})
}
