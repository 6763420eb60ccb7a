package services

import (
	"errors"
	"fmt"
)

// Error vocabulary shared by the services. Controllers map these onto
// HTTP statuses with errors.Is / errors.As.
var (
	ErrValidation         = errors.New("validation")
	ErrItemNotFound       = errors.New("item_not_found")
	ErrBookingNotFound    = errors.New("booking_not_found")
	ErrItemReferenced     = errors.New("item_referenced")
	ErrReferenceCollision = errors.New("reference_collision")
	ErrInvalidTransition  = errors.New("invalid_status_transition")
)

// AvailabilityError reports an insufficient-stock conflict for one cart
// entry at booking-creation time.
type AvailabilityError struct {
	ItemID    uint
	ItemName  string
	Available int
	Requested int
}

func (e *AvailabilityError) Error() string {
	return fmt.Sprintf("%s not enough quantity. Available: %d", e.ItemName, e.Available)
}
