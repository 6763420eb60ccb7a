package models

// BookingItem is one (item, quantity) line of a booking. PricePerDay is
// snapshotted at booking time so later price changes never touch
// existing bookings. Rows are immutable after creation.
type BookingItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	BookingID uint `gorm:"index;column:booking_id;not null" json:"booking_id"`
	ItemID    uint `gorm:"index;column:item_id;not null" json:"item_id"`

	Qty         int   `gorm:"column:qty;not null" json:"qty"`
	PricePerDay int64 `gorm:"column:price_per_day;not null" json:"price_per_day"`

	Item Item `gorm:"foreignKey:ItemID;references:ID" json:"item,omitempty"`
}
