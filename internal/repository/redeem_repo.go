package repository

import (
	"go-market-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PointsTotals carries the independently summed earned and used points.
type PointsTotals struct {
	Earned int64 `json:"earn"`
	Used   int64 `json:"used"`
}

// RedeemRepository is the append-only loyalty store. Balances are never
// materialized; Totals recomputes both sums on every call.
type RedeemRepository interface {
	Append(tx *gorm.DB, entry *model.RedeemEntry) error
	FindByUser(userID uuid.UUID) ([]model.RedeemEntry, error)
	Totals(userID uuid.UUID) (*PointsTotals, error)
}

type redeemRepo struct {
	db *gorm.DB
}

func NewRedeemRepo(db *gorm.DB) RedeemRepository {
	return &redeemRepo{db}
}

func (r *redeemRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *redeemRepo) Append(tx *gorm.DB, entry *model.RedeemEntry) error {
	return r.conn(tx).Create(entry).Error
}

func (r *redeemRepo) FindByUser(userID uuid.UUID) ([]model.RedeemEntry, error) {
	var entries []model.RedeemEntry
	err := r.db.Where("user_id = ?", userID).Order("date DESC").Find(&entries).Error
	return entries, err
}

func (r *redeemRepo) Totals(userID uuid.UUID) (*PointsTotals, error) {
	var totals PointsTotals
	err := r.db.Model(&model.RedeemEntry{}).
		Select(`
			COALESCE(SUM(CASE WHEN status = ? THEN redeem_points ELSE 0 END), 0) as earned,
			COALESCE(SUM(CASE WHEN status = ? THEN redeem_points ELSE 0 END), 0) as used
		`, model.RedeemEarned, model.RedeemUsed).
		Where("user_id = ?", userID).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}
