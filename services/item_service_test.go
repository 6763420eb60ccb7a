package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"rental-backend/models"
)

func TestActiveItems_FiltersInactive(t *testing.T) {
	store := newFakeStore(
		models.Item{ID: 1, Name: "Chairs", PricePerDay: 500, QuantityTotal: 200, IsActive: true},
		models.Item{ID: 2, Name: "Retired tent", PricePerDay: 1000, QuantityTotal: 2, IsActive: false},
	)
	svc := NewItemService(store, nil)

	items, err := svc.ActiveItems(context.Background())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(items) != 1 || items[0].ID != 1 {
		t.Errorf("expected only the active item, got %+v", items)
	}

	all, err := svc.AllItems()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 items in admin listing, got %d", len(all))
	}
}

func TestCreateItem_Validation(t *testing.T) {
	svc := NewItemService(newFakeStore(), nil)

	cases := []struct {
		name string
		item models.Item
	}{
		{"empty name", models.Item{Name: "  ", PricePerDay: 500, QuantityTotal: 10}},
		{"zero price", models.Item{Name: "Chairs", PricePerDay: 0, QuantityTotal: 10}},
		{"negative price", models.Item{Name: "Chairs", PricePerDay: -1, QuantityTotal: 10}},
		{"zero quantity", models.Item{Name: "Chairs", PricePerDay: 500, QuantityTotal: 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.Create(context.Background(), &tc.item); !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestUpdateItem_NotFound(t *testing.T) {
	svc := NewItemService(newFakeStore(), nil)

	item := models.Item{ID: 42, Name: "Chairs", PricePerDay: 500, QuantityTotal: 10}
	if err := svc.Update(context.Background(), &item); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestDeleteItem_BlockedWhenReferenced(t *testing.T) {
	store := newFakeStore(models.Item{ID: 1, Name: "Chairs", PricePerDay: 500, QuantityTotal: 10, IsActive: true})
	seedBooking(store, models.StatusCancelled, "2024-06-01", "2024-06-02", 1, 1)
	svc := NewItemService(store, nil)

	// Even a cancelled booking keeps the item in history.
	err := svc.Delete(context.Background(), 1)
	if !errors.Is(err, ErrItemReferenced) {
		t.Fatalf("expected ErrItemReferenced, got %v", err)
	}
	if _, ok := store.items[1]; !ok {
		t.Errorf("referenced item must not be deleted")
	}
}

func TestDeleteItem_UnreferencedSucceeds(t *testing.T) {
	store := newFakeStore(models.Item{ID: 1, Name: "Chairs", PricePerDay: 500, QuantityTotal: 10, IsActive: true})
	svc := NewItemService(store, nil)

	if err := svc.Delete(context.Background(), 1); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if _, ok := store.items[1]; ok {
		t.Errorf("expected item to be deleted")
	}

	if err := svc.Delete(context.Background(), 1); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound on second delete, got %v", err)
	}
}

func TestDeleteItem_ConcurrentWithBooking(t *testing.T) {
	store := newFakeStore(models.Item{ID: 1, Name: "Tent", PricePerDay: 8000, QuantityTotal: 1, IsActive: true})
	itemSvc := NewItemService(store, nil)
	bookingSvc := NewBookingService(store)

	var wg sync.WaitGroup
	var deleteErr, bookErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		deleteErr = itemSvc.Delete(context.Background(), 1)
	}()
	go func() {
		defer wg.Done()
		_, bookErr = bookingSvc.Create(validInput(CartEntry{ItemID: 1, Qty: 1}))
	}()
	wg.Wait()

	// The reference check and the delete share a transaction, so the
	// outcome is one of two consistent states: the booking won and the
	// delete was refused, or the delete won and the booking saw no item.
	switch {
	case bookErr == nil:
		if !errors.Is(deleteErr, ErrItemReferenced) {
			t.Fatalf("booking won; expected ErrItemReferenced from delete, got %v", deleteErr)
		}
		if _, ok := store.items[1]; !ok {
			t.Fatal("referenced item must survive the delete attempt")
		}
	case deleteErr == nil:
		if !errors.Is(bookErr, ErrItemNotFound) {
			t.Fatalf("delete won; expected ErrItemNotFound from booking, got %v", bookErr)
		}
		if store.bookingCount() != 0 {
			t.Fatal("no booking may reference a deleted item")
		}
	default:
		t.Fatalf("expected exactly one winner, got delete=%v booking=%v", deleteErr, bookErr)
	}
}
