package model

import (
	"github.com/google/uuid"
)

// Entity status values used across the catalog tables. Removed rows keep
// their history (status 3) instead of being hard deleted.
const (
	StatusActive   = 1
	StatusInactive = 2
	StatusRemoved  = 3
)

type Category struct {
	BaseModel
	CategoryName string `gorm:"type:varchar(255);not null" json:"category_name" validate:"required"`
	Image        string `gorm:"type:varchar(500)" json:"image"`
	Status       int    `gorm:"default:1" json:"status"`
}

type SubCategory struct {
	BaseModel
	CategoryID      uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id" validate:"uuid_required"`
	Category        *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	SubCategoryName string    `gorm:"type:varchar(255);not null" json:"sub_category_name" validate:"required"`
	Image           string    `gorm:"type:varchar(500)" json:"image"`
	Status          int       `gorm:"default:1" json:"status"`
}

type State struct {
	BaseModel
	StateName    string `gorm:"type:varchar(100);uniqueIndex;not null" json:"state_name" validate:"required"`
	PostcodeFrom string `gorm:"type:varchar(10)" json:"postcode_from"`
	PostcodeTo   string `gorm:"type:varchar(10)" json:"postcode_to"`
	Status       int    `gorm:"default:1" json:"status"`
}

type Postcode struct {
	BaseModel
	PostCode string    `gorm:"type:varchar(10);not null;index" json:"post_code" validate:"required"`
	StateID  uuid.UUID `gorm:"type:uuid;not null;index" json:"state_id" validate:"uuid_required"`
	State    *State    `gorm:"foreignKey:StateID" json:"state,omitempty"`
	Status   int       `gorm:"default:1" json:"status"`
}

type Unit struct {
	BaseModel
	UnitName string `gorm:"type:varchar(50);uniqueIndex;not null" json:"unit_name" validate:"required"`
	Status   int    `gorm:"default:1" json:"status"`
}

type Filter struct {
	BaseModel
	FilterName string `gorm:"type:varchar(100);not null" json:"filter_name" validate:"required"`
	Status     int    `gorm:"default:1" json:"status"`
}
