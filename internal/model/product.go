package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog row. Availability is never stored here; it is derived
// from the stock movement ledger on demand.
type Product struct {
	BaseModel
	ItemName    string          `gorm:"type:varchar(255);not null" json:"item_name" validate:"required"`
	Description string          `gorm:"type:text" json:"description"`
	Image       string          `gorm:"type:varchar(500)" json:"image"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price" validate:"required"`
	ActualPrice decimal.Decimal `gorm:"type:decimal(12,2)" json:"actual_price"`
	Weight      string          `gorm:"type:varchar(50)" json:"weight"`

	CategoryID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"category_id" validate:"uuid_required"`
	Category      *Category    `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	SubCategoryID uuid.UUID    `gorm:"type:uuid;index" json:"sub_category_id"`
	SubCategory   *SubCategory `gorm:"foreignKey:SubCategoryID" json:"sub_category,omitempty"`
	StateID       uuid.UUID    `gorm:"type:uuid;index" json:"state_id"`
	UnitID        uuid.UUID    `gorm:"type:uuid;index" json:"unit_id"`
	Unit          *Unit        `gorm:"foreignKey:UnitID" json:"unit,omitempty"`

	// Opening quantity submitted at creation; seeds the initial PURCHASE
	// ledger entry and is never updated afterwards.
	ItemsAvailable int `gorm:"not null;default:0" json:"items_available"`

	Status int `gorm:"default:1" json:"status"`
}

// ProductWithStock annotates a catalog row with its live net stock.
type ProductWithStock struct {
	Product
	CurrentStock int  `json:"current_stock"`
	Oversold     bool `json:"oversold"`
}
