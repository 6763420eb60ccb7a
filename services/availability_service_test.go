package services

import (
	"errors"
	"testing"
	"time"

	"rental-backend/models"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func seedBooking(store *fakeStore, status, start, end string, itemID uint, qty int) {
	store.bookings = append(store.bookings, models.Booking{
		ID:        uint(len(store.bookings) + 100),
		Status:    status,
		StartDate: date(start),
		EndDate:   date(end),
		Items:     []models.BookingItem{{ItemID: itemID, Qty: qty}},
	})
	store.nextBookingID = uint(len(store.bookings) + 100)
}

func TestCheck_AvailabilityMath(t *testing.T) {
	store := newFakeStore(models.Item{ID: 1, Name: "Chairs", QuantityTotal: 10, IsActive: true})
	seedBooking(store, models.StatusPaid, "2024-06-02", "2024-06-04", 1, 4)
	svc := NewAvailabilityService(store)

	result, err := svc.Check("2024-06-01", "2024-06-05", []CartEntry{{ItemID: 1, Qty: 6}})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("expected 1 result, got %d", len(result))
	}
	entry := result[0]
	if entry.Available != 6 {
		t.Errorf("expected available 6, got %d", entry.Available)
	}
	if !entry.OK {
		t.Errorf("expected ok for requested 6 of 6 available")
	}

	result, err = svc.Check("2024-06-01", "2024-06-05", []CartEntry{{ItemID: 1, Qty: 7}})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if result[0].OK {
		t.Errorf("expected not ok for requested 7 of 6 available")
	}
}

func TestCheck_InclusiveBoundaryOverlap(t *testing.T) {
	store := newFakeStore(models.Item{ID: 1, Name: "Tent", QuantityTotal: 1, IsActive: true})
	seedBooking(store, models.StatusAwaitingPayment, "2024-06-01", "2024-06-05", 1, 1)
	svc := NewAvailabilityService(store)

	// Booking ends the same day the query starts; inclusive ranges
	// overlap, so the unit is still reserved.
	result, err := svc.Check("2024-06-05", "2024-06-10", []CartEntry{{ItemID: 1, Qty: 1}})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if result[0].OK || result[0].Available != 0 {
		t.Errorf("expected boundary day to block: %+v", result[0])
	}

	// One day later there is no overlap.
	result, err = svc.Check("2024-06-06", "2024-06-10", []CartEntry{{ItemID: 1, Qty: 1}})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !result[0].OK || result[0].Available != 1 {
		t.Errorf("expected non-overlapping range to be free: %+v", result[0])
	}
}

func TestCheck_NonBlockingStatusesIgnored(t *testing.T) {
	store := newFakeStore(models.Item{ID: 1, Name: "Tent", QuantityTotal: 1, IsActive: true})
	seedBooking(store, models.StatusCompleted, "2024-06-01", "2024-06-05", 1, 1)
	seedBooking(store, models.StatusCancelled, "2024-06-01", "2024-06-05", 1, 1)
	svc := NewAvailabilityService(store)

	result, err := svc.Check("2024-06-01", "2024-06-05", []CartEntry{{ItemID: 1, Qty: 1}})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !result[0].OK || result[0].Available != 1 {
		t.Errorf("completed/cancelled bookings must not reserve stock: %+v", result[0])
	}
}

func TestCheck_MissingAndInactiveItems(t *testing.T) {
	store := newFakeStore(models.Item{ID: 2, Name: "Retired", QuantityTotal: 5, IsActive: false})
	svc := NewAvailabilityService(store)

	result, err := svc.Check("2024-06-01", "2024-06-05", []CartEntry{
		{ItemID: 1, Qty: 1},
		{ItemID: 2, Qty: 1},
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	for i, entry := range result {
		if entry.OK {
			t.Errorf("entry %d: expected not ok", i)
		}
		if entry.Reason != "Item not found" {
			t.Errorf("entry %d: expected not-found reason, got %q", i, entry.Reason)
		}
	}
}

func TestCheck_InvalidInput(t *testing.T) {
	svc := NewAvailabilityService(newFakeStore())

	cases := []struct {
		name       string
		start, end string
	}{
		{"missing start", "", "2024-06-05"},
		{"missing end", "2024-06-01", ""},
		{"malformed date", "June 1st", "2024-06-05"},
		{"end before start", "2024-06-05", "2024-06-01"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Check(tc.start, tc.end, []CartEntry{{ItemID: 1, Qty: 1}})
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestRentalDays(t *testing.T) {
	cases := []struct {
		start, end string
		want       int
	}{
		{"2024-01-01", "2024-01-01", 1},
		{"2024-01-01", "2024-01-03", 3},
		{"2024-06-01", "2024-06-05", 5},
	}
	for _, tc := range cases {
		if got := RentalDays(date(tc.start), date(tc.end)); got != tc.want {
			t.Errorf("RentalDays(%s, %s) = %d, want %d", tc.start, tc.end, got, tc.want)
		}
	}
}
