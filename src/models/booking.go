package models

import "ota/src/types"

type Booking struct {
	ID           string              `gorm:"primarykey" json:"id"`
	UserID       uint                `json:"user_id,omitempty"`
	ActivityID   string              `json:"activity_id,omitempty"`
	ScheduleID   uint                `gorm:"index" json:"schedule_id,omitempty"`
	Participants uint                `json:"participants,omitempty"`
	TotalPrice   float32             `json:"total_price"`
	Status       types.BookingStatus `gorm:"default:'pending'" json:"status,omitempty"`

	User     *User     `gorm:"foreignKey:user_id" json:"user,omitempty"`
	Activity *Activity `gorm:"foreignKey:activity_id" json:"activity,omitempty"`
	Schedule *Schedule `gorm:"foreignKey:schedule_id" json:"schedule,omitempty"`

	types.Timestamps
}
