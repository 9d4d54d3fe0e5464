package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GiftBox is a curated bundle of catalog items sold as one unit.
type GiftBox struct {
	BaseModel
	BoxName      string          `gorm:"type:varchar(255);not null" json:"box_name" validate:"required"`
	ItemsAllowed int             `gorm:"not null" json:"items_allowed" validate:"required,gt=0"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	Image        string          `gorm:"type:varchar(500)" json:"image"`
	Status       int             `gorm:"default:1" json:"status"`

	Items []GiftBoxItem `gorm:"foreignKey:GiftBoxID" json:"items,omitempty"`
}

func (GiftBox) TableName() string {
	return "gift_boxes"
}

// GiftBoxItem snapshots a bundled catalog item the same way order items do.
type GiftBoxItem struct {
	BaseModel
	GiftBoxID uuid.UUID       `gorm:"type:uuid;not null;index" json:"gift_box_id"`
	ItemID    uuid.UUID       `gorm:"type:uuid;not null" json:"item_id"`
	ItemName  string          `gorm:"type:varchar(255);not null" json:"item_name"`
	ItemImage string          `gorm:"type:varchar(500)" json:"item_image"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
}

func (GiftBoxItem) TableName() string {
	return "gift_box_items"
}
