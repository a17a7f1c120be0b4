package models

import "time"

// Favorite links a traveler to a saved property. The composite unique
// index makes duplicate saves a storage-level conflict as well.
type Favorite struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID     uint `gorm:"uniqueIndex:idx_favorites_user_property;not null" json:"user_id"`
	PropertyID uint `gorm:"uniqueIndex:idx_favorites_user_property;not null" json:"property_id"`

	CreatedAt time.Time `json:"created_at"`
}
