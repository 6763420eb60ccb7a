package repository

import (
	"errors"
	"time"

	"rental-backend/models"
)

// Storage-level sentinels. Services translate these into their own
// error vocabulary.
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

// Store abstracts everything the availability and booking logic needs
// from the backing database so the services stay testable without one.
type Store interface {
	// Items
	ListItems(onlyActive bool) ([]models.Item, error)
	FindActiveItem(id uint) (*models.Item, error)
	CreateItem(item *models.Item) error
	UpdateItem(item *models.Item) error
	DeleteItem(id uint) error
	ItemReferenced(id uint) (bool, error)

	// Bookings
	SumBookedQty(itemID uint, start, end time.Time) (int, error)
	InsertBooking(booking *models.Booking) error
	FindBooking(id uint) (*models.Booking, error)
	ListBookings() ([]models.Booking, error)
	UpdateBookingStatus(booking *models.Booking) error
	ReferenceExists(ref string) (bool, error)

	// LockItems takes row locks on the given item ids for the duration
	// of the surrounding transaction. Outside a transaction it is a
	// plain read.
	LockItems(ids []uint) error

	// InTransaction runs fn against a transaction-bound Store. Any
	// error rolls the whole transaction back.
	InTransaction(fn func(Store) error) error
}
