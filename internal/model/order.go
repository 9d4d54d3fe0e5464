package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment / completion flags on an order.
const (
	PaymentPending = 0
	PaymentPaid    = 1

	OrderOpen      = 0
	OrderCompleted = 1
)

// Address is an immutable value captured on the order at creation time.
type Address struct {
	Address1 string `gorm:"type:varchar(255)" json:"address1" validate:"required"`
	Address2 string `gorm:"type:varchar(255)" json:"address2"`
	City     string `gorm:"type:varchar(100)" json:"city" validate:"required"`
	State    string `gorm:"type:varchar(100)" json:"state" validate:"required"`
	Postcode string `gorm:"type:varchar(10)" json:"postcode" validate:"required"`
}

// Order is the aggregate root for a purchase. OrderUUID is the public,
// gateway-correlated reference; the internal storage id never leaves the
// service. Line items are denormalized snapshots, never live catalog refs.
type Order struct {
	BaseModel
	OrderUUID string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"order_uuid"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user"`
	OrderDate time.Time `gorm:"not null;index" json:"order_date"`
	Status    int       `gorm:"default:1" json:"status"`

	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	DeliveryCharges decimal.Decimal `gorm:"type:decimal(12,2)" json:"delivery_charges"`

	FirstName      string `gorm:"type:varchar(100)" json:"first_name"`
	LastName       string `gorm:"type:varchar(100)" json:"last_name"`
	Email          string `gorm:"type:varchar(255)" json:"email_id"`
	PhoneNumber    string `gorm:"type:varchar(20)" json:"phone_number"`
	AlternatePhone string `gorm:"type:varchar(20)" json:"alternate_phone"`

	MailingAddress  Address `gorm:"embedded;embeddedPrefix:mailing_address_" json:"mailing_address"`
	ShippingAddress Address `gorm:"embedded;embeddedPrefix:shipping_address_" json:"shipping_address"`

	StateDetails     string `gorm:"type:varchar(100)" json:"state_details"`
	RedeemPointsUsed int64  `gorm:"default:0" json:"redeempoints_used"`

	Payment        int `gorm:"default:0;index" json:"payment"`
	OrderCompleted int `gorm:"default:0" json:"order_completed"`

	// Gateway receipt snapshot, written once when the paid transition fires.
	TransactionID   string     `gorm:"type:varchar(50)" json:"transaction_id,omitempty"`
	AuthCode        string     `gorm:"type:varchar(50)" json:"auth_code,omitempty"`
	ResponseCode    string     `gorm:"type:varchar(10)" json:"response_code,omitempty"`
	ResponseMessage string     `gorm:"type:varchar(255)" json:"response_message,omitempty"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderUUID;references:OrderUUID" json:"items,omitempty"`

	UserDetails *User `gorm:"foreignKey:UserID" json:"user_details,omitempty"`
}

// OrderItem is a denormalized line-item snapshot. Name, image and price are
// captured at order-creation time so historical orders survive catalog edits.
type OrderItem struct {
	BaseModel
	OrderUUID string          `gorm:"type:varchar(36);not null;index" json:"order_uuid"`
	ItemID    uuid.UUID       `gorm:"type:uuid;not null" json:"item_id"`
	ItemName  string          `gorm:"type:varchar(255);not null" json:"item_name"`
	ItemImage string          `gorm:"type:varchar(500)" json:"item_image"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Status    int             `gorm:"default:1" json:"status"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
