package types

import (
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type ActivityStatus string

const (
	ACTIVITY_DRAFT  ActivityStatus = "draft"
	ACTIVITY_OPEN   ActivityStatus = "open"
	ACTIVITY_CLOSED ActivityStatus = "closed"
)

type BookingStatus string

const (
	BOOKING_PENDING   BookingStatus = "pending"
	BOOKING_CONFIRMED BookingStatus = "confirmed"
	BOOKING_CANCELED  BookingStatus = "cancelled"
)

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type ResourceRequestParams struct {
	ID string `uri:"id" binding:"required"`
}

type CreateActivityRequestBody struct {
	Title       string  `json:"title" binding:"required"`
	Location    string  `json:"location" binding:"required"`
	Description string  `json:"description,omitempty"`
	UnitPrice   float32 `json:"unit_price" binding:"required,gte=0"`
	SupplierID  uint    `json:"supplier" binding:"required"`
	Publish     bool    `json:"publish,omitempty"`
}

type CreateScheduleRequestBody struct {
	StartsAt    string `json:"starts_at" binding:"required"`
	EndsAt      string `json:"ends_at" binding:"required"`
	MaxCapacity uint   `json:"max_capacity" binding:"required,gt=0"`
}

type CreateBookingRequestBody struct {
	ScheduleID   uint   `json:"schedule" binding:"required"`
	UserID       uint   `json:"user" binding:"required"`
	ActivityID   string `json:"activity" binding:"required"`
	Participants uint   `json:"participants" binding:"required,gt=0"`
}
