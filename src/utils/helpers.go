package utils

import (
	"context"
	"time"

	"ota/src/db"
	"ota/src/ident"
	"ota/src/models"
	"ota/src/types"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

func CreateNewActivity(ctx context.Context, ids *ident.Allocator, params *types.CreateActivityRequestBody) (string, error) {
	status := types.ACTIVITY_DRAFT
	if params.Publish {
		status = types.ACTIVITY_OPEN
	}
	prefix := ident.DatePrefix(time.Now())
	gdb := db.GetDb()
	return ids.Allocate(ctx, "activities", prefix, func(id string) error {
		activity := models.Activity{
			ID:         id,
			Title:      params.Title,
			Slug:       slug.Make(params.Title),
			Location:   params.Location,
			UnitPrice:  params.UnitPrice,
			Status:     status,
			SupplierID: params.SupplierID,
		}
		if params.Description != "" {
			activity.Description = &params.Description
		}
		return gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return tx.Create(&activity).Error
		})
	})
}

func PublishActivity(ctx context.Context, id string) error {
	gdb := db.GetDb()
	return gdb.WithContext(ctx).
		Model(&models.Activity{}).
		Where(&models.Activity{ID: id}).
		Update("status", types.ACTIVITY_OPEN).
		Error
}

func ParseScheduleTimes(params *types.CreateScheduleRequestBody) (starts time.Time, ends time.Time, err error) {
	starts, err = time.Parse(time.RFC3339, params.StartsAt)
	if err != nil {
		return
	}
	ends, err = time.Parse(time.RFC3339, params.EndsAt)
	return
}
