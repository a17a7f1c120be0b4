package dto

import (
	"time"

	"github.com/lib/pq"
)

// PropertyRow is a catalog entry joined with the owner's display name.
type PropertyRow struct {
	ID          uint   `json:"id"`
	OwnerID     uint   `json:"owner_id"`
	Name        string `gorm:"column:name" json:"property_name"`
	Type        string `gorm:"column:type" json:"property_type"`
	Description string `json:"description"`

	Location string `json:"location"`
	City     string `json:"city"`
	Country  string `json:"country"`

	PricePerNight float64 `json:"price_per_night"`
	Bedrooms      int     `json:"bedrooms"`
	Bathrooms     int     `json:"bathrooms"`
	MaxGuests     int     `json:"max_guests"`

	Amenities pq.StringArray `gorm:"type:text[]" json:"amenities"`
	Images    pq.StringArray `gorm:"type:text[]" json:"images"`

	CreatedAt time.Time `json:"created_at"`

	OwnerName string `json:"owner_name"`
}

// PropertyDetail adds the owner's phone for the single-property view.
type PropertyDetail struct {
	PropertyRow
	OwnerPhone string `json:"owner_phone"`
}
