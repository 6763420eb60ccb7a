package services

import (
	"errors"
	"fmt"
	"time"

	"rental-backend/models"
	"rental-backend/repository"
)

const dateLayout = "2006-01-02"

// CartEntry is one requested (item, quantity) pair.
type CartEntry struct {
	ItemID uint `json:"item_id"`
	Qty    int  `json:"qty"`
}

// ItemAvailability is the per-entry result of an availability check.
type ItemAvailability struct {
	ItemID    uint   `json:"item_id"`
	Name      string `json:"name,omitempty"`
	OK        bool   `json:"ok"`
	Available int    `json:"available"`
	Requested int    `json:"requested"`
	Reason    string `json:"reason,omitempty"`
}

type AvailabilityService struct {
	Store repository.Store
}

func NewAvailabilityService(store repository.Store) *AvailabilityService {
	return &AvailabilityService{Store: store}
}

// Check computes remaining stock per cart entry for the inclusive date
// range [start, end]. Read-only; a missing or inactive item is reported
// in its result entry rather than failing the whole check.
func (s *AvailabilityService) Check(startDate, endDate string, cart []CartEntry) ([]ItemAvailability, error) {
	start, end, err := parseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	results := make([]ItemAvailability, 0, len(cart))
	for _, entry := range cart {
		item, err := s.Store.FindActiveItem(entry.ItemID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				results = append(results, ItemAvailability{
					ItemID:    entry.ItemID,
					OK:        false,
					Requested: entry.Qty,
					Reason:    "Item not found",
				})
				continue
			}
			return nil, err
		}

		available, err := remainingStock(s.Store, item, start, end)
		if err != nil {
			return nil, err
		}

		results = append(results, ItemAvailability{
			ItemID:    item.ID,
			Name:      item.Name,
			OK:        entry.Qty <= available,
			Available: available,
			Requested: entry.Qty,
		})
	}
	return results, nil
}

// remainingStock subtracts the quantity reserved by overlapping blocking
// bookings from the item's total stock.
func remainingStock(store repository.Store, item *models.Item, start, end time.Time) (int, error) {
	booked, err := store.SumBookedQty(item.ID, start, end)
	if err != nil {
		return 0, err
	}
	return item.QuantityTotal - booked, nil
}

func parseDateRange(startDate, endDate string) (time.Time, time.Time, error) {
	if startDate == "" || endDate == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date and end_date are required", ErrValidation)
	}
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid start_date %q", ErrValidation, startDate)
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid end_date %q", ErrValidation, endDate)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end_date before start_date", ErrValidation)
	}
	return start, end, nil
}

// RentalDays counts calendar days in the inclusive range, minimum 1, so
// same-day rentals bill a full day.
func RentalDays(start, end time.Time) int {
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return days
}
