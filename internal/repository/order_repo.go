package repository

import (
	"time"

	"go-market-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaidReceipt is the gateway receipt snapshot written onto the order when
// the paid transition fires.
type PaidReceipt struct {
	TransactionID   string
	AuthCode        string
	ResponseCode    string
	ResponseMessage string
}

type OrderRepository interface {
	Create(order *model.Order) error
	FindByUUID(orderUUID string) (*model.Order, error)
	FindByUser(userID uuid.UUID) ([]model.Order, error)
	FindAll() ([]model.Order, error)
	FindByDateRange(from, to time.Time) ([]model.Order, error)
	// MarkPaid performs the conditional payment transition. It reports false
	// when the order was already paid (zero rows affected), which is the
	// idempotency guard for concurrent or repeated confirmations.
	MarkPaid(tx *gorm.DB, orderUUID string, receipt PaidReceipt, paidAt time.Time) (bool, error)
	UpdateStatus(orderUUID string, payment, orderCompleted int) error
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

func (r *orderRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *orderRepo) Create(order *model.Order) error {
	// Header and snapshot line items persist in one transaction via the
	// association.
	return r.db.Create(order).Error
}

func (r *orderRepo) FindByUUID(orderUUID string) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("Items").First(&order, "order_uuid = ?", orderUUID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) FindByUser(userID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Items").Preload("UserDetails").
		Where("user_id = ?", userID).
		Order("order_date DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindAll() ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Items").Preload("UserDetails").
		Order("order_date DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindByDateRange(from, to time.Time) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Items").Preload("UserDetails").
		Where("order_date BETWEEN ? AND ?", from, to).
		Order("order_date DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) MarkPaid(tx *gorm.DB, orderUUID string, receipt PaidReceipt, paidAt time.Time) (bool, error) {
	res := r.conn(tx).Model(&model.Order{}).
		Where("order_uuid = ? AND payment = ?", orderUUID, model.PaymentPending).
		Updates(map[string]interface{}{
			"payment":          model.PaymentPaid,
			"transaction_id":   receipt.TransactionID,
			"auth_code":        receipt.AuthCode,
			"response_code":    receipt.ResponseCode,
			"response_message": receipt.ResponseMessage,
			"paid_at":          paidAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *orderRepo) UpdateStatus(orderUUID string, payment, orderCompleted int) error {
	return r.db.Model(&model.Order{}).
		Where("order_uuid = ?", orderUUID).
		Updates(map[string]interface{}{
			"payment":         payment,
			"order_completed": orderCompleted,
		}).Error
}
