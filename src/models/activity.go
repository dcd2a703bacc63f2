package models

import "ota/src/types"

// Activity is a bookable product in the catalog. Its primary key is a
// date-scoped sequential identifier minted by the ident allocator.
type Activity struct {
	ID          string               `gorm:"primarykey" json:"id"`
	Title       string               `json:"title,omitempty"`
	Slug        string               `gorm:"index" json:"slug,omitempty"`
	Location    string               `json:"location,omitempty"`
	Description *string              `json:"description,omitempty"`
	UnitPrice   float32              `json:"unit_price"`
	Status      types.ActivityStatus `gorm:"default:'draft'" json:"status,omitempty"`
	SupplierID  uint                 `json:"supplier,omitempty"`

	Supplier  User       `gorm:"foreignKey:supplier_id" json:"-"`
	Schedules []Schedule `json:"schedules,omitempty"`

	types.Timestamps
}
