package main

import (
	"encoding/json"
	"net/http"
	"time"

	"ota/src/db"
	"ota/src/lib"
	"ota/src/models"
	"ota/src/types"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const catalogCacheKey = "catalog:open"
const catalogCacheTTL = 60 * time.Second

func catalogHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/catalog", func(ctx *gin.Context) {
			rdb := lib.GetRedisClient()
			if rdb != nil {
				cached, err := rdb.Get(ctx.Request.Context(), catalogCacheKey).Result()
				if err == nil {
					ctx.Data(http.StatusOK, "application/json", []byte(cached))
					return
				}
				if err != redis.Nil {
					logger.Warn().Err(err).Msg("catalog cache read failed")
				}
			}
			db := db.GetDb()
			var activities []models.Activity
			err := db.
				Model(&models.Activity{}).
				Where(&models.Activity{Status: types.ACTIVITY_OPEN}).
				Order("created_at DESC").
				Limit(100).
				Find(&activities).
				Error
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			payload, err := json.Marshal(gin.H{"data": activities, "count": len(activities)})
			if err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			if rdb != nil {
				if err := rdb.Set(ctx.Request.Context(), catalogCacheKey, payload, catalogCacheTTL).Err(); err != nil {
					logger.Warn().Err(err).Msg("catalog cache write failed")
				}
			}
			ctx.Data(http.StatusOK, "application/json", payload)
		}).
		GET("/catalog/:slug", func(ctx *gin.Context) {
			db := db.GetDb()
			var activity models.Activity
			if err := db.
				Where(&models.Activity{Slug: ctx.Params.ByName("slug"), Status: types.ACTIVITY_OPEN}).
				Preload("Schedules").
				First(&activity).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": activity})
		})
	return g
}
