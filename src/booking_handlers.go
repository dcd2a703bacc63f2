package main

import (
	"errors"
	"net/http"

	"ota/src/booking"
	"ota/src/db"
	"ota/src/ident"
	"ota/src/lib"
	"ota/src/models"
	"ota/src/types"

	"github.com/gin-gonic/gin"
)

func bookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/bookings", func(ctx *gin.Context) {
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			b, err := bookingAllocator.Book(ctx.Request.Context(), body.ScheduleID, body.UserID, body.ActivityID, body.Participants)
			if err != nil {
				writeBookingError(ctx, err)
				return
			}
			lib.IncBookingsAdmitted()
			ctx.JSON(http.StatusCreated, gin.H{"data": b})
		}).
		GET("/bookings/:id", func(ctx *gin.Context) {
			var params types.ResourceRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var b models.Booking
			if err := db.
				Where(&models.Booking{ID: params.ID}).
				Preload("Activity").
				Preload("Schedule").
				First(&b).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": b})
		}).
		GET("/users/:id/bookings", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var bookings []models.Booking
			err := db.
				Model(&models.Booking{}).
				Where(&models.Booking{UserID: params.ID}).
				Preload("Activity").
				Order("created_at DESC").
				Limit(100).
				Find(&bookings).
				Error
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		PUT("/bookings/:id/cancel", func(ctx *gin.Context) {
			var params types.ResourceRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			if err := bookingAllocator.Cancel(ctx.Request.Context(), params.ID); err != nil {
				writeBookingError(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}

// writeBookingError maps allocator failures onto HTTP statuses. Capacity
// rejections are a normal outcome and must stay distinguishable from store
// failures so the client can render a "sold out" message.
func writeBookingError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrCapacityExceeded):
		lib.IncBookingsRejected("capacity")
		ctx.JSON(http.StatusConflict, gin.H{"error": "sold out", "reason": "capacity_exceeded"})
	case errors.Is(err, booking.ErrScheduleNotFound):
		lib.IncBookingsRejected("schedule_not_found")
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrActivityNotFound):
		lib.IncBookingsRejected("activity_not_found")
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrBookingNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrAlreadyCanceled), errors.Is(err, booking.ErrInvalidParty):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ident.ErrExhausted):
		logger.Error().Err(err).Msg("identifier exhaustion on booking create")
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		logger.Error().Err(err).Msg("booking store failure")
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	}
}
