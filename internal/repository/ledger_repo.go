package repository

import (
	"go-market-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockNet is the grouped ledger aggregate for one item.
type StockNet struct {
	ItemID        uuid.UUID `json:"item_id"`
	TotalPurchase int       `json:"total_purchase"`
	TotalSold     int       `json:"total_sold"`
}

func (n StockNet) Current() int {
	return n.TotalPurchase - n.TotalSold
}

// LedgerRepository is the append-only store for stock movements. Entries are
// never updated or deleted; there is deliberately no mutator beyond Append.
type LedgerRepository interface {
	// Append writes one entry. It joins an enclosing transaction when tx is
	// non-nil, matching the fulfillment flow.
	Append(tx *gorm.DB, movement *model.StockMovement) error
	// NetByItem aggregates through tx when non-nil so a caller inside a
	// transaction sees its own uncommitted appends.
	NetByItem(tx *gorm.DB, itemID uuid.UUID) (*StockNet, error)
	// NetBulk aggregates the whole ledger for the given items in a single
	// grouped query.
	NetBulk(itemIDs []uuid.UUID) (map[uuid.UUID]StockNet, error)
	HistoryByItem(itemID uuid.UUID) ([]model.StockMovement, error)
	FindAll() ([]model.StockMovement, error)
}

type ledgerRepo struct {
	db *gorm.DB
}

func NewLedgerRepo(db *gorm.DB) LedgerRepository {
	return &ledgerRepo{db}
}

func (r *ledgerRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *ledgerRepo) Append(tx *gorm.DB, movement *model.StockMovement) error {
	return r.conn(tx).Create(movement).Error
}

func (r *ledgerRepo) NetByItem(tx *gorm.DB, itemID uuid.UUID) (*StockNet, error) {
	net := StockNet{ItemID: itemID}
	err := r.conn(tx).Model(&model.StockMovement{}).
		Select(`
			COALESCE(SUM(CASE WHEN status = ? THEN quantity ELSE 0 END), 0) as total_purchase,
			COALESCE(SUM(CASE WHEN status = ? THEN quantity ELSE 0 END), 0) as total_sold
		`, model.MovementPurchase, model.MovementSale).
		Where("item_id = ?", itemID).
		Scan(&net).Error
	if err != nil {
		return nil, err
	}
	return &net, nil
}

func (r *ledgerRepo) NetBulk(itemIDs []uuid.UUID) (map[uuid.UUID]StockNet, error) {
	result := make(map[uuid.UUID]StockNet, len(itemIDs))
	if len(itemIDs) == 0 {
		return result, nil
	}

	var rows []StockNet
	err := r.db.Model(&model.StockMovement{}).
		Select(`
			item_id,
			COALESCE(SUM(CASE WHEN status = ? THEN quantity ELSE 0 END), 0) as total_purchase,
			COALESCE(SUM(CASE WHEN status = ? THEN quantity ELSE 0 END), 0) as total_sold
		`, model.MovementPurchase, model.MovementSale).
		Where("item_id IN ?", itemIDs).
		Group("item_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.ItemID] = row
	}
	// Items with no ledger entries still get a zero row.
	for _, id := range itemIDs {
		if _, ok := result[id]; !ok {
			result[id] = StockNet{ItemID: id}
		}
	}
	return result, nil
}

func (r *ledgerRepo) HistoryByItem(itemID uuid.UUID) ([]model.StockMovement, error) {
	var movements []model.StockMovement
	err := r.db.Where("item_id = ?", itemID).
		Order("date ASC, created_at ASC").
		Find(&movements).Error
	return movements, err
}

func (r *ledgerRepo) FindAll() ([]model.StockMovement, error) {
	var movements []model.StockMovement
	err := r.db.Order("date ASC, created_at ASC").Find(&movements).Error
	return movements, err
}
