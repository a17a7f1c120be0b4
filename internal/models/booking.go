package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// No FK constraints: a cancelled booking keeps the id of a deleted
	// property so both parties retain their history.
	PropertyID uint     `gorm:"index;not null" json:"property_id"`
	Property   Property `gorm:"constraint:-" json:"-"`

	TravelerID uint `gorm:"index;not null" json:"traveler_id"`
	Traveler   User `gorm:"constraint:-" json:"-"`

	// Half-open stay range: the start night is booked, the end date is
	// checkout and stays free for the next guest.
	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`

	NumGuests  int     `gorm:"not null" json:"num_guests"`
	TotalPrice float64 `gorm:"not null" json:"total_price"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	AcceptedAt  *time.Time `json:"accepted_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
