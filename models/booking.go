package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Booking statuses. Bookings start in awaiting_payment and only ever
// move forward through the transition table below.
const (
	StatusAwaitingPayment = "awaiting_payment"
	StatusPaid            = "paid"
	StatusCompleted       = "completed"
	StatusCancelled       = "cancelled"
)

// BlockingStatuses are the statuses whose reserved quantity counts
// against available stock. Completed bookings free their inventory.
var BlockingStatuses = []string{StatusAwaitingPayment, StatusPaid}

var statusTransitions = map[string][]string{
	StatusAwaitingPayment: {StatusPaid, StatusCancelled},
	StatusPaid:            {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether a booking may move from one status to
// another. Cancelled and completed are terminal.
func CanTransition(from, to string) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

type Booking struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CustomerName  string `gorm:"column:customer_name;size:255;not null" json:"customer_name"`
	CustomerEmail string `gorm:"column:customer_email;size:255;not null" json:"customer_email"`
	CustomerPhone string `gorm:"column:customer_phone;size:64;not null" json:"customer_phone"`

	// Calendar dates, inclusive on both ends.
	StartDate time.Time `gorm:"column:start_date;type:date;not null;index" json:"start_date"`
	EndDate   time.Time `gorm:"column:end_date;type:date;not null;index" json:"end_date"`

	Status      string `gorm:"column:status;size:32;not null;default:awaiting_payment;index" json:"status"`
	AmountTotal int64  `gorm:"column:amount_total;not null;default:0" json:"amount_total"`

	DeliveryAddress  string `gorm:"column:delivery_address;size:512" json:"delivery_address"`
	DeliveryCity     string `gorm:"column:delivery_city;size:255" json:"delivery_city"`
	DeliveryLandmark string `gorm:"column:delivery_landmark;size:255" json:"delivery_landmark"`

	PaymentMethod    string `gorm:"column:payment_method;size:32;default:momo" json:"payment_method"`
	PaymentReference string `gorm:"column:payment_reference;size:64;uniqueIndex" json:"payment_reference"`

	StatusHistory datatypes.JSON `gorm:"column:status_history" json:"status_history,omitempty"`

	Items []BookingItem `gorm:"foreignKey:BookingID" json:"items"`
}

// StatusChange is one entry of Booking.StatusHistory.
type StatusChange struct {
	From string    `json:"from"`
	To   string    `json:"to"`
	At   time.Time `json:"at"`
}

// AppendStatusChange appends a transition entry to a raw status-history
// JSON array and returns the updated document.
func AppendStatusChange(raw datatypes.JSON, from, to string, at time.Time) (datatypes.JSON, error) {
	var history []StatusChange
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &history); err != nil {
			return nil, err
		}
	}
	history = append(history, StatusChange{From: from, To: to, At: at})
	out, err := json.Marshal(history)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(out), nil
}
