package main

import (
	"net/http"

	"ota/src/db"
	"ota/src/models"
	"ota/src/types"
	"ota/src/utils"

	"github.com/gin-gonic/gin"
)

func activityHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/activities", func(ctx *gin.Context) {
			db := db.GetDb()
			var activities []models.Activity
			err := db.
				Model(&models.Activity{}).
				Order("created_at DESC").
				Limit(100).
				Find(&activities).
				Error
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": activities, "count": len(activities)})
		}).
		GET("/activities/:id", func(ctx *gin.Context) {
			var params types.ResourceRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var activity models.Activity
			if err := db.
				Where(&models.Activity{ID: params.ID}).
				Preload("Schedules").
				First(&activity).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": activity})
		}).
		POST("/activities", func(ctx *gin.Context) {
			var body types.CreateActivityRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			id, err := utils.CreateNewActivity(ctx.Request.Context(), idAllocator, &body)
			if err != nil {
				logger.Error().Err(err).Msg("error creating activity")
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"id": id})
		}).
		PUT("/activities/:id/publish", func(ctx *gin.Context) {
			var params types.ResourceRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			if err := utils.PublishActivity(ctx.Request.Context(), params.ID); err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
