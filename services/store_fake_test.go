package services

import (
	"sync"
	"time"

	"rental-backend/models"
	"rental-backend/repository"
)

// fakeStore is an in-memory repository.Store for service tests. Its
// transaction lock serializes InTransaction callers the way row locks
// serialize the real store.
type fakeStore struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	items         map[uint]models.Item
	bookings      []models.Booking
	nextBookingID uint
	nextLineID    uint
}

func newFakeStore(items ...models.Item) *fakeStore {
	f := &fakeStore{items: make(map[uint]models.Item)}
	for _, item := range items {
		f.items[item.ID] = item
	}
	return f
}

func (f *fakeStore) ListItems(onlyActive bool) ([]models.Item, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []models.Item
	for _, item := range f.items {
		if onlyActive && !item.IsActive {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeStore) FindActiveItem(id uint) (*models.Item, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	item, ok := f.items[id]
	if !ok || !item.IsActive {
		return nil, repository.ErrNotFound
	}
	copied := item
	return &copied, nil
}

func (f *fakeStore) CreateItem(item *models.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if item.ID == 0 {
		item.ID = uint(len(f.items) + 1)
	}
	f.items[item.ID] = *item
	return nil
}

func (f *fakeStore) UpdateItem(item *models.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[item.ID]; !ok {
		return repository.ErrNotFound
	}
	f.items[item.ID] = *item
	return nil
}

func (f *fakeStore) DeleteItem(id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeStore) ItemReferenced(id uint) (bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, booking := range f.bookings {
		for _, line := range booking.Items {
			if line.ItemID == id {
				return true, nil
			}
		}
	}
	return false, nil
}

func (f *fakeStore) SumBookedQty(itemID uint, start, end time.Time) (int, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	booked := 0
	for _, booking := range f.bookings {
		if !blocking(booking.Status) {
			continue
		}
		// Inclusive interval overlap.
		if booking.StartDate.After(end) || booking.EndDate.Before(start) {
			continue
		}
		for _, line := range booking.Items {
			if line.ItemID == itemID {
				booked += line.Qty
			}
		}
	}
	return booked, nil
}

func blocking(status string) bool {
	for _, s := range models.BlockingStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func (f *fakeStore) InsertBooking(booking *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.bookings {
		if existing.PaymentReference == booking.PaymentReference {
			return repository.ErrDuplicateKey
		}
	}
	f.nextBookingID++
	booking.ID = f.nextBookingID
	for i := range booking.Items {
		f.nextLineID++
		booking.Items[i].ID = f.nextLineID
		booking.Items[i].BookingID = booking.ID
	}
	f.bookings = append(f.bookings, *booking)
	return nil
}

func (f *fakeStore) FindBooking(id uint) (*models.Booking, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, booking := range f.bookings {
		if booking.ID == id {
			copied := booking
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) ListBookings() ([]models.Booking, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]models.Booking, len(f.bookings))
	copy(out, f.bookings)
	return out, nil
}

func (f *fakeStore) UpdateBookingStatus(booking *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.bookings {
		if f.bookings[i].ID == booking.ID {
			f.bookings[i].Status = booking.Status
			f.bookings[i].StatusHistory = booking.StatusHistory
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeStore) ReferenceExists(ref string) (bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, booking := range f.bookings {
		if booking.PaymentReference == ref {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) LockItems(ids []uint) error { return nil }

func (f *fakeStore) InTransaction(fn func(repository.Store) error) error {
	f.txMu.Lock()
	defer f.txMu.Unlock()
	return fn(f)
}

func (f *fakeStore) bookingCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.bookings)
}
