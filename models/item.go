package models

import (
	"time"

	"gorm.io/gorm"
)

// Item is one rentable inventory entry. Prices are stored in minor
// currency units, never floats.
type Item struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name          string `gorm:"column:name;size:255;not null" json:"name"`
	Description   string `gorm:"column:description;type:text" json:"description"`
	PricePerDay   int64  `gorm:"column:price_per_day;not null" json:"price_per_day"`
	QuantityTotal int    `gorm:"column:quantity_total;not null;default:1" json:"quantity_total"`
	IsActive      bool   `gorm:"column:is_active;not null;default:true" json:"is_active"`
	Category      string `gorm:"column:category;size:100" json:"category"`
	ImageRef      string `gorm:"column:image_ref;size:512" json:"image_ref"`
}
