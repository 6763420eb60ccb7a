package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"rental-backend/models"

	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore is the MySQL-backed Store.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) ListItems(onlyActive bool) ([]models.Item, error) {
	var items []models.Item
	q := s.db.Order("id DESC")
	if onlyActive {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

func (s *GormStore) FindActiveItem(id uint) (*models.Item, error) {
	var item models.Item
	if err := s.db.Where("id = ? AND is_active = ?", id, true).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find active item %d: %w", id, err)
	}
	return &item, nil
}

func (s *GormStore) CreateItem(item *models.Item) error {
	if err := s.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

func (s *GormStore) UpdateItem(item *models.Item) error {
	res := s.db.Model(&models.Item{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
		"name":           item.Name,
		"description":    item.Description,
		"price_per_day":  item.PricePerDay,
		"quantity_total": item.QuantityTotal,
		"is_active":      item.IsActive,
		"category":       item.Category,
		"image_ref":      item.ImageRef,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update item %d: %w", item.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) DeleteItem(id uint) error {
	res := s.db.Delete(&models.Item{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete item %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) ItemReferenced(id uint) (bool, error) {
	var count int64
	if err := s.db.Model(&models.BookingItem{}).Where("item_id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count references for item %d: %w", id, err)
	}
	return count > 0, nil
}

// SumBookedQty aggregates reserved quantity for an item across bookings
// in a blocking status whose inclusive date range overlaps [start, end].
func (s *GormStore) SumBookedQty(itemID uint, start, end time.Time) (int, error) {
	var booked int
	err := s.db.Model(&models.BookingItem{}).
		Select("COALESCE(SUM(booking_items.qty), 0)").
		Joins("JOIN bookings ON bookings.id = booking_items.booking_id").
		Where("booking_items.item_id = ?", itemID).
		Where("bookings.status IN ?", models.BlockingStatuses).
		Where("bookings.start_date <= ? AND bookings.end_date >= ?", end, start).
		Where("bookings.deleted_at IS NULL").
		Scan(&booked).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum booked qty for item %d: %w", itemID, err)
	}
	return booked, nil
}

func (s *GormStore) InsertBooking(booking *models.Booking) error {
	if err := s.db.Create(booking).Error; err != nil {
		if isDuplicateEntry(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (s *GormStore) FindBooking(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.Preload("Items").First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking %d: %w", id, err)
	}
	return &booking, nil
}

func (s *GormStore) ListBookings() ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.db.
		Preload("Items").
		Preload("Items.Item").
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	for i := range bookings {
		if bookings[i].Items == nil {
			bookings[i].Items = []models.BookingItem{}
		}
	}
	return bookings, nil
}

func (s *GormStore) UpdateBookingStatus(booking *models.Booking) error {
	if err := s.db.Model(&models.Booking{}).Where("id = ?", booking.ID).Updates(map[string]interface{}{
		"status":         booking.Status,
		"status_history": booking.StatusHistory,
	}).Error; err != nil {
		return fmt.Errorf("failed to update booking %d status: %w", booking.ID, err)
	}
	return nil
}

func (s *GormStore) ReferenceExists(ref string) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Booking{}).Where("payment_reference = ?", ref).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check payment reference: %w", err)
	}
	return count > 0, nil
}

func (s *GormStore) LockItems(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	var locked []uint
	if err := s.db.Model(&models.Item{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Pluck("id", &locked).Error; err != nil {
		return fmt.Errorf("failed to lock item rows: %w", err)
	}
	return nil
}

func (s *GormStore) InTransaction(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func isDuplicateEntry(err error) bool {
	if err == nil {
		return false
	}
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		return merr.Number == 1062
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "duplicate") || strings.Contains(lower, "unique constraint")
}
