package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wishlist holds at most one active row per (user, item). Adding an item
// that is already wishlisted removes the row (toggle semantics).
type Wishlist struct {
	BaseModel
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_wishlist_user_item" json:"user"`
	ItemID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_wishlist_user_item" json:"item_id" validate:"uuid_required"`
	Quantity  int             `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	Status    int             `gorm:"default:1" json:"status"`
	AddedDate time.Time       `json:"added_date"`
}

func (Wishlist) TableName() string {
	return "wishlists"
}

// CheckoutItem holds at most one active row per (user, item); a repeat add
// upserts the quantity instead of duplicating the row.
type CheckoutItem struct {
	BaseModel
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_checkout_user_item" json:"user"`
	ItemID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_checkout_user_item" json:"item_id" validate:"uuid_required"`
	Quantity     int             `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Price        decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	Status       int             `gorm:"default:1" json:"status"`
	CheckoutDate time.Time       `json:"checkout_date"`
}

func (CheckoutItem) TableName() string {
	return "checkout_items"
}

// ListedItem is a wishlist/checkout row resolved against the live catalog
// for display (name, image, availability).
type ListedItem struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"user"`
	ItemID         uuid.UUID       `json:"item_id"`
	ItemName       string          `json:"item_name"`
	Image          string          `json:"image"`
	Quantity       int             `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	Amount         decimal.Decimal `json:"amount"`
	Status         int             `json:"status"`
	ItemsAvailable int             `json:"items_available"`
	Date           time.Time       `json:"date"`
}
