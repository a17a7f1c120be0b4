package models

import "time"

type Role string

const (
	RoleTraveler Role = "traveler"
	RoleOwner    Role = "owner"
)

func (r Role) Valid() bool {
	return r == RoleTraveler || r == RoleOwner
}

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         Role   `gorm:"size:20;not null" json:"role"`

	Phone      string `gorm:"size:20" json:"phone"`
	AboutMe    string `gorm:"size:500" json:"about_me"`
	City       string `gorm:"size:100" json:"city"`
	Country    string `gorm:"size:100" json:"country"`
	Languages  string `gorm:"size:255" json:"languages"`
	Gender     string `gorm:"size:20" json:"gender"`
	ProfilePic string `gorm:"size:255" json:"profile_pic"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
