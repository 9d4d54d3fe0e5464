package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RedeemStatus marks a loyalty entry as earned or used. Values are part of
// the storage format.
type RedeemStatus int

const (
	RedeemEarned RedeemStatus = 1
	RedeemUsed   RedeemStatus = 2
)

// RedeemEntry is one append-only loyalty ledger record. The running balance
// for a user is always recomputed as sum(earned) - sum(used).
type RedeemEntry struct {
	BaseModel
	Date        time.Time       `gorm:"not null" json:"date"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user"`
	OrderRef    string          `gorm:"type:varchar(36);index" json:"order_id"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2)" json:"total_amount"`
	Points      int64           `gorm:"column:redeem_points;not null" json:"redeem_points"`
	Status      RedeemStatus    `gorm:"not null;default:1" json:"status"`
}

func (RedeemEntry) TableName() string {
	return "redeem_entries"
}
