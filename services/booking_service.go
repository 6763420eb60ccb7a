package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"rental-backend/models"
	"rental-backend/repository"
	"rental-backend/utils"
)

const maxReferenceAttempts = 3

type BookingService struct {
	Store repository.Store

	// NewReference is swappable so collision handling can be tested.
	NewReference func() string
}

func NewBookingService(store repository.Store) *BookingService {
	return &BookingService{
		Store:        store,
		NewReference: utils.NewPaymentReference,
	}
}

type CreateBookingInput struct {
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`

	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	DeliveryAddress  string `json:"delivery_address"`
	DeliveryCity     string `json:"delivery_city"`
	DeliveryLandmark string `json:"delivery_landmark"`

	Cart []CartEntry `json:"cart"`
}

type CreateBookingResult struct {
	BookingID   uint
	AmountTotal int64
	Reference   string
}

// Create validates the request, re-checks availability for every cart
// entry and persists the booking header plus line items atomically. The
// check and the insert run in one transaction with the cart's item rows
// locked, so two concurrent submissions for the same stock serialize and
// the loser sees the winner's reservation.
func (s *BookingService) Create(input CreateBookingInput) (*CreateBookingResult, error) {
	if err := validateBookingInput(input); err != nil {
		return nil, err
	}
	start, end, err := parseDateRange(input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}
	days := RentalDays(start, end)

	reference, err := s.uniqueReference()
	if err != nil {
		return nil, err
	}

	var result CreateBookingResult
	txErr := s.Store.InTransaction(func(tx repository.Store) error {
		itemIDs := make([]uint, 0, len(input.Cart))
		for _, entry := range input.Cart {
			itemIDs = append(itemIDs, entry.ItemID)
		}
		if err := tx.LockItems(itemIDs); err != nil {
			return err
		}

		var total int64
		lines := make([]models.BookingItem, 0, len(input.Cart))
		for _, entry := range input.Cart {
			item, err := tx.FindActiveItem(entry.ItemID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return fmt.Errorf("%w: item %d", ErrItemNotFound, entry.ItemID)
				}
				return err
			}

			available, err := remainingStock(tx, item, start, end)
			if err != nil {
				return err
			}
			if entry.Qty > available {
				return &AvailabilityError{
					ItemID:    item.ID,
					ItemName:  item.Name,
					Available: available,
					Requested: entry.Qty,
				}
			}

			total += item.PricePerDay * int64(entry.Qty) * int64(days)
			lines = append(lines, models.BookingItem{
				ItemID:      item.ID,
				Qty:         entry.Qty,
				PricePerDay: item.PricePerDay,
			})
		}

		history, err := models.AppendStatusChange(nil, "", models.StatusAwaitingPayment, time.Now().UTC())
		if err != nil {
			return err
		}

		booking := models.Booking{
			CustomerName:     strings.TrimSpace(input.CustomerName),
			CustomerEmail:    strings.TrimSpace(input.CustomerEmail),
			CustomerPhone:    strings.TrimSpace(input.CustomerPhone),
			StartDate:        start,
			EndDate:          end,
			Status:           models.StatusAwaitingPayment,
			AmountTotal:      total,
			DeliveryAddress:  strings.TrimSpace(input.DeliveryAddress),
			DeliveryCity:     strings.TrimSpace(input.DeliveryCity),
			DeliveryLandmark: strings.TrimSpace(input.DeliveryLandmark),
			PaymentMethod:    "momo",
			PaymentReference: reference,
			StatusHistory:    history,
			Items:            lines,
		}

		if err := tx.InsertBooking(&booking); err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				// Lost a reference race after the pre-check; the retry
				// budget is spent, surface it instead of looping inside
				// an open transaction.
				return ErrReferenceCollision
			}
			return err
		}

		result = CreateBookingResult{
			BookingID:   booking.ID,
			AmountTotal: total,
			Reference:   reference,
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &result, nil
}

// uniqueReference generates a payment reference and regenerates a
// bounded number of times when it already exists.
func (s *BookingService) uniqueReference() (string, error) {
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		ref := s.NewReference()
		exists, err := s.Store.ReferenceExists(ref)
		if err != nil {
			return "", err
		}
		if !exists {
			return ref, nil
		}
	}
	return "", ErrReferenceCollision
}

// Transition moves a booking to the target status when the state
// machine allows it and records the change in the status history.
func (s *BookingService) Transition(bookingID uint, target string) (*models.Booking, error) {
	var out *models.Booking
	err := s.Store.InTransaction(func(tx repository.Store) error {
		booking, err := tx.FindBooking(bookingID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		if !models.CanTransition(booking.Status, target) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, target)
		}

		history, err := models.AppendStatusChange(booking.StatusHistory, booking.Status, target, time.Now().UTC())
		if err != nil {
			return err
		}
		booking.Status = target
		booking.StatusHistory = history

		if err := tx.UpdateBookingStatus(booking); err != nil {
			return err
		}
		out = booking
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListWithItems returns all bookings with their line items for the
// admin dashboard, newest first.
func (s *BookingService) ListWithItems() ([]models.Booking, error) {
	return s.Store.ListBookings()
}

func validateBookingInput(input CreateBookingInput) error {
	if strings.TrimSpace(input.CustomerName) == "" ||
		strings.TrimSpace(input.CustomerEmail) == "" ||
		strings.TrimSpace(input.CustomerPhone) == "" {
		return fmt.Errorf("%w: missing required customer fields", ErrValidation)
	}
	if strings.TrimSpace(input.DeliveryAddress) == "" || strings.TrimSpace(input.DeliveryCity) == "" {
		return fmt.Errorf("%w: missing delivery address/city", ErrValidation)
	}
	if len(input.Cart) == 0 {
		return fmt.Errorf("%w: cart is empty", ErrValidation)
	}
	seen := make(map[uint]bool, len(input.Cart))
	for _, entry := range input.Cart {
		if entry.Qty <= 0 {
			return fmt.Errorf("%w: qty must be positive for item %d", ErrValidation, entry.ItemID)
		}
		// Duplicate entries would each pass the availability check on
		// their own while their sum oversells the item.
		if seen[entry.ItemID] {
			return fmt.Errorf("%w: duplicate cart entry for item %d", ErrValidation, entry.ItemID)
		}
		seen[entry.ItemID] = true
	}
	return nil
}
