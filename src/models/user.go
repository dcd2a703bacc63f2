package models

import "ota/src/types"

type User struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	Name     string `json:"name,omitempty"`
	Email    string `gorm:"uniqueIndex" json:"email,omitempty"`
	Supplier bool   `json:"supplier,omitempty"`

	Bookings []Booking `json:"bookings,omitempty"`

	types.Timestamps
}
