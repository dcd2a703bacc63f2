package main

import (
	"net/http"

	"ota/src/db"
	"ota/src/models"
	"ota/src/types"
	"ota/src/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func scheduleHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/activities/:id/schedules", func(ctx *gin.Context) {
			var params types.ResourceRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var schedules []models.Schedule
			err := db.
				Model(&models.Schedule{}).
				Where(&models.Schedule{ActivityID: params.ID}).
				Order("starts_at ASC").
				Limit(100).
				Find(&schedules).
				Error
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": schedules, "count": len(schedules)})
		}).
		GET("/schedules/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var schedule models.Schedule
			if err := db.
				Where(&models.Schedule{ID: params.ID}).
				Preload("Activity").
				First(&schedule).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": schedule})
		}).
		POST("/activities/:id/schedules", func(ctx *gin.Context) {
			var params types.ResourceRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.CreateScheduleRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			starts, ends, err := utils.ParseScheduleTimes(&body)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			schedule := models.Schedule{
				ActivityID:  params.ID,
				StartsAt:    starts,
				EndsAt:      ends,
				MaxCapacity: body.MaxCapacity,
			}
			err = db.Transaction(func(tx *gorm.DB) error {
				var activity models.Activity
				if err := tx.Where(&models.Activity{ID: params.ID}).First(&activity).Error; err != nil {
					return err
				}
				return tx.Create(&schedule).Error
			})
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"id": schedule.ID})
		})
	return g
}
