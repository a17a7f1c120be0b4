package models

import (
	"time"

	"github.com/lib/pq"
)

type Property struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OwnerID uint `gorm:"index;not null" json:"owner_id"`
	Owner   User `gorm:"constraint:-" json:"-"`

	Name        string `gorm:"size:100;not null" json:"property_name"`
	Type        string `gorm:"size:50;not null" json:"property_type"`
	Description string `gorm:"type:text" json:"description"`

	Location string `gorm:"size:255;not null" json:"location"`
	City     string `gorm:"size:100;not null" json:"city"`
	Country  string `gorm:"size:100;not null" json:"country"`

	PricePerNight float64 `gorm:"not null" json:"price_per_night"`
	Bedrooms      int     `gorm:"not null" json:"bedrooms"`
	Bathrooms     int     `gorm:"not null" json:"bathrooms"`
	MaxGuests     int     `gorm:"not null" json:"max_guests"`

	Amenities pq.StringArray `gorm:"type:text[]" json:"amenities"`
	Images    pq.StringArray `gorm:"type:text[]" json:"images"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
