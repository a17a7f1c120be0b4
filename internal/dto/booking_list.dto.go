package dto

import "time"

// TravelerBookingRow is a booking joined with the property and its
// owner's contact info, as shown on the traveler's trips page.
type TravelerBookingRow struct {
	ID         uint      `json:"id"`
	PropertyID uint      `json:"property_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	NumGuests  int       `json:"num_guests"`
	TotalPrice float64   `json:"total_price"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`

	PropertyName string `json:"property_name"`
	Location     string `json:"location"`
	City         string `json:"city"`
	OwnerName    string `json:"owner_name"`
	OwnerPhone   string `json:"owner_phone"`
}

// OwnerBookingRow is a booking joined with the property and the
// requesting traveler's contact info.
type OwnerBookingRow struct {
	ID         uint      `json:"id"`
	PropertyID uint      `json:"property_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	NumGuests  int       `json:"num_guests"`
	TotalPrice float64   `json:"total_price"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`

	PropertyName  string `json:"property_name"`
	Location      string `json:"location"`
	City          string `json:"city"`
	TravelerName  string `json:"traveler_name"`
	TravelerEmail string `json:"traveler_email"`
	TravelerPhone string `json:"traveler_phone"`
}
