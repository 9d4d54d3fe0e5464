package model

import (
	"time"

	"github.com/google/uuid"
)

// MovementKind tags a ledger entry as a sale (stock out) or purchase
// (stock in). The numeric values are part of the wire and storage format.
type MovementKind int

const (
	MovementSale     MovementKind = 1
	MovementPurchase MovementKind = 2
)

// Transaction type tags recorded on ledger entries.
const (
	TransactionByOrder      = "By Order"
	TransactionByAdjustment = "By Adjustment"
	TransactionByCreate     = "By Create"
)

// StockMovement is one immutable ledger entry. Entries are only ever
// appended; current stock for an item is the net of its entries
// (sum of PURCHASE quantities minus sum of SALE quantities).
type StockMovement struct {
	BaseModel
	Date            time.Time    `gorm:"not null;index" json:"date"`
	UserID          uuid.UUID    `gorm:"type:uuid;not null" json:"user"`
	OrderRef        string       `gorm:"type:varchar(36);index" json:"order_id"`
	ItemID          uuid.UUID    `gorm:"type:uuid;not null;index" json:"item_id"`
	Quantity        int          `gorm:"not null" json:"quantity"`
	Kind            MovementKind `gorm:"column:status;not null" json:"status"`
	TransactionType string       `gorm:"type:varchar(50)" json:"transaction_type"`
}

func (StockMovement) TableName() string {
	return "stock_movements"
}

// StockSummary is the per-item aggregate of the ledger.
type StockSummary struct {
	ItemID        uuid.UUID `json:"item_id"`
	ItemName      string    `json:"item_name,omitempty"`
	Image         string    `json:"image,omitempty"`
	TotalPurchase int       `json:"total_purchase"`
	TotalSold     int       `json:"total_sold"`
	CurrentStock  int       `json:"current_stock"`
	Oversold      bool      `json:"oversold"`
}
