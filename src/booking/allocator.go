// Package booking admits or rejects reservations against finite-capacity
// schedules. Admission and the capacity increment commit as one transaction;
// the guarded UPDATE on the schedule row is the serialization point, so two
// decisions computed from stale reads can never both commit an over-capacity
// result.
package booking

import (
	"context"
	"errors"
	"time"

	"ota/src/ident"
	"ota/src/models"
	"ota/src/types"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var (
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrActivityNotFound = errors.New("activity not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrCapacityExceeded = errors.New("schedule capacity exceeded")
	ErrInvalidParty     = errors.New("participants must be a positive integer")
	ErrAlreadyCanceled  = errors.New("booking already cancelled")
)

const bookingsTable = "bookings"

type Allocator struct {
	db  *gorm.DB
	ids *ident.Allocator
	log zerolog.Logger
}

func NewAllocator(db *gorm.DB, ids *ident.Allocator, log zerolog.Logger) *Allocator {
	return &Allocator{db: db, ids: ids, log: log}
}

// Book reserves participants seats on a schedule. On success the created
// Booking (status pending, totalPrice = unitPrice * participants) is
// returned and the schedule's current_bookings has been advanced in the
// same transaction. Failures are one of ErrScheduleNotFound,
// ErrActivityNotFound, ErrCapacityExceeded, ident.ErrExhausted, or a store
// error; none of them leaves partial state behind.
func (a *Allocator) Book(ctx context.Context, scheduleID uint, userID uint, activityID string, participants uint) (*models.Booking, error) {
	if participants == 0 {
		return nil, ErrInvalidParty
	}
	var booking models.Booking
	prefix := ident.DatePrefix(time.Now())
	// An identifier collision aborts the transaction, so the retry loop
	// re-runs the whole admission against fresh reads.
	_, err := a.ids.Allocate(ctx, bookingsTable, prefix, func(id string) error {
		return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var schedule models.Schedule
			if err := tx.Where(&models.Schedule{ID: scheduleID}).First(&schedule).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrScheduleNotFound
				}
				return err
			}
			var activity models.Activity
			if err := tx.Where(&models.Activity{ID: activityID}).First(&activity).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrActivityNotFound
				}
				return err
			}
			wouldBe := schedule.CurrentBookings + participants
			if wouldBe > schedule.MaxCapacity {
				return ErrCapacityExceeded
			}
			booking = models.Booking{
				ID:           id,
				UserID:       userID,
				ActivityID:   activityID,
				ScheduleID:   scheduleID,
				Participants: participants,
				TotalPrice:   activity.UnitPrice * float32(participants),
				Status:       types.BOOKING_PENDING,
			}
			if err := tx.Create(&booking).Error; err != nil {
				return err
			}
			res := tx.Model(&models.Schedule{}).
				Where("id = ? AND current_bookings + ? <= max_capacity", scheduleID, participants).
				Update("current_bookings", gorm.Expr("current_bookings + ?", participants))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// A concurrent admission advanced the schedule past what
				// the read above saw. Rolling back discards the booking.
				return ErrCapacityExceeded
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	a.log.Info().
		Str("booking", booking.ID).
		Uint("schedule", scheduleID).
		Uint("participants", participants).
		Msg("booking admitted")
	return &booking, nil
}

// Cancel marks a pending or confirmed booking cancelled and releases its
// seats with the mirrored guard, so current_bookings never drops below
// zero. Cancelling twice fails with ErrAlreadyCanceled.
func (a *Allocator) Cancel(ctx context.Context, bookingID string) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.Where(&models.Booking{ID: bookingID}).First(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if booking.Status == types.BOOKING_CANCELED {
			return ErrAlreadyCanceled
		}
		if err := tx.Model(&models.Booking{}).
			Where(&models.Booking{ID: bookingID}).
			Update("status", types.BOOKING_CANCELED).
			Error; err != nil {
			return err
		}
		res := tx.Model(&models.Schedule{}).
			Where("id = ? AND current_bookings >= ?", booking.ScheduleID, booking.Participants).
			Update("current_bookings", gorm.Expr("current_bookings - ?", booking.Participants))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.New("schedule capacity accounting out of sync")
		}
		return nil
	})
}
