package models

import (
	"time"

	"ota/src/types"
)

// Schedule is one bookable occurrence of an Activity. CurrentBookings is
// only ever advanced by the booking allocator's guarded update and must
// stay within [0, MaxCapacity].
type Schedule struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	ActivityID      string    `gorm:"index" json:"activity_id,omitempty"`
	StartsAt        time.Time `json:"starts_at,omitempty"`
	EndsAt          time.Time `json:"ends_at,omitempty"`
	MaxCapacity     uint      `json:"max_capacity,omitempty"`
	CurrentBookings uint      `json:"current_bookings"`

	Activity Activity  `json:"activity,omitempty"`
	Bookings []Booking `json:"bookings,omitempty"`

	types.Timestamps
}
