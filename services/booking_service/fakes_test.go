package booking_service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/joy095/shareit/models/booking_models"
	"github.com/joy095/shareit/models/catalog_models"
	"github.com/joy095/shareit/utils"
)

type fakeDirectory struct {
	users map[int64]*catalog_models.User
	items map[int64]*catalog_models.Item
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		users: make(map[int64]*catalog_models.User),
		items: make(map[int64]*catalog_models.Item),
	}
}

func (d *fakeDirectory) addUser(id int64, name string) {
	d.users[id] = &catalog_models.User{ID: id, Name: name, Email: name + "@example.com"}
}

func (d *fakeDirectory) addItem(id, ownerID int64, name string, available bool) {
	d.items[id] = &catalog_models.Item{ID: id, OwnerID: ownerID, Name: name, Available: available}
}

func (d *fakeDirectory) FindUser(_ context.Context, id int64) (*catalog_models.User, error) {
	u, ok := d.users[id]
	if !ok {
		return nil, catalog_models.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (d *fakeDirectory) FindItem(_ context.Context, id int64) (*catalog_models.Item, error) {
	i, ok := d.items[id]
	if !ok {
		return nil, catalog_models.ErrItemNotFound
	}
	copied := *i
	return &copied, nil
}

// fakeStore is an in-memory booking_models.Store.
type fakeStore struct {
	mu       sync.Mutex
	dir      *fakeDirectory
	nextID   int64
	bookings map[int64]booking_models.Booking
}

func newFakeStore(dir *fakeDirectory) *fakeStore {
	return &fakeStore{dir: dir, bookings: make(map[int64]booking_models.Booking)}
}

// put stores b as-is, bypassing the state machine.
func (s *fakeStore) put(b booking_models.Booking) booking_models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	b.ID = s.nextID
	b.Version = 1
	s.bookings[b.ID] = b
	return b
}

func (s *fakeStore) Create(_ context.Context, b *booking_models.Booking) error {
	stored := s.put(*b)
	*b = stored
	return nil
}

func (s *fakeStore) GetDetail(_ context.Context, id int64) (*booking_models.BookingDetail, error) {
	s.mu.Lock()
	b, ok := s.bookings[id]
	s.mu.Unlock()
	if !ok {
		return nil, booking_models.ErrBookingNotFound
	}
	d := s.detail(b)
	return &d, nil
}

func (s *fakeStore) UpdateStatus(_ context.Context, id, version int64, from, to booking_models.Status) (*booking_models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok || b.Version != version || b.Status != from {
		return nil, utils.ErrConflict
	}
	b.Status = to
	b.Version++
	s.bookings[id] = b
	return &b, nil
}

func (s *fakeStore) HasOverlap(_ context.Context, itemID, excludeID int64, status booking_models.Status, start, end time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.ItemID == itemID && b.ID != excludeID && b.Status == status && overlaps(b, start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) List(_ context.Context, q booking_models.Query) ([]booking_models.BookingDetail, error) {
	s.mu.Lock()
	var matched []booking_models.BookingDetail
	for _, b := range s.bookings {
		d := s.detail(b)
		if q.Role == booking_models.RoleOwner && d.Item.OwnerID != q.SubjectID {
			continue
		}
		if q.Role == booking_models.RoleBooker && b.BookerID != q.SubjectID {
			continue
		}
		if matches(q, b) {
			matched = append(matched, d)
		}
	}
	s.mu.Unlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Start.Equal(matched[j].Start) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].Start.After(matched[j].Start)
	})

	if q.Offset >= len(matched) {
		return nil, nil
	}
	matched = matched[q.Offset:]
	if q.Limit > 0 && q.Limit < len(matched) {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

func (s *fakeStore) ListByItems(_ context.Context, itemIDs []int64, status booking_models.Status) ([]booking_models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wanted := make(map[int64]bool, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = true
	}
	var out []booking_models.Booking
	for _, b := range s.bookings {
		if wanted[b.ItemID] && b.Status == status {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (s *fakeStore) detail(b booking_models.Booking) booking_models.BookingDetail {
	d := booking_models.BookingDetail{Booking: b}
	if item, ok := s.dir.items[b.ItemID]; ok {
		d.Item = *item
	}
	if user, ok := s.dir.users[b.BookerID]; ok {
		d.Booker = *user
	}
	return d
}

// overlaps mirrors PgStore.HasOverlap: half-open intervals, touching ends do
// not intersect.
func overlaps(b booking_models.Booking, start, end time.Time) bool {
	return b.Start.Before(end) && start.Before(b.End)
}

// matches mirrors the criteria buildListQuery renders as SQL. Bounds are strict.
func matches(q booking_models.Query, b booking_models.Booking) bool {
	if q.Status != "" && b.Status != q.Status {
		return false
	}
	if q.StartBefore != nil && !b.Start.Before(*q.StartBefore) {
		return false
	}
	if q.StartAfter != nil && !b.Start.After(*q.StartAfter) {
		return false
	}
	if q.EndBefore != nil && !b.End.Before(*q.EndBefore) {
		return false
	}
	if q.EndAfter != nil && !b.End.After(*q.EndAfter) {
		return false
	}
	return true
}
