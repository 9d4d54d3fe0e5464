package service

import (
	"errors"
	"time"

	"go-market-api/internal/model"
	"go-market-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrInvalidPoints = errors.New("points must be greater than zero")

// PointsSummary is the recomputed running balance for one user.
type PointsSummary struct {
	Earned  int64 `json:"earn"`
	Used    int64 `json:"used"`
	Balance int64 `json:"balance"`
}

// LoyaltyLedger is a dumb append/sum primitive. Accrual policy (thresholds,
// earn rates) belongs to the fulfillment orchestrator, not here; the only
// guard on record is a positive amount.
type LoyaltyLedger interface {
	RecordEarn(tx *gorm.DB, userID uuid.UUID, orderRef string, totalAmount decimal.Decimal, points int64, date time.Time) error
	RecordUse(tx *gorm.DB, userID uuid.UUID, orderRef string, totalAmount decimal.Decimal, points int64, date time.Time) error
	Entries(userID uuid.UUID) ([]model.RedeemEntry, error)
	TotalPoints(userID uuid.UUID) (*PointsSummary, error)
}

type loyaltyLedger struct {
	redeemRepo repository.RedeemRepository
}

func NewLoyaltyLedger(redeemRepo repository.RedeemRepository) LoyaltyLedger {
	return &loyaltyLedger{redeemRepo: redeemRepo}
}

func (s *loyaltyLedger) record(tx *gorm.DB, userID uuid.UUID, orderRef string, totalAmount decimal.Decimal, points int64, status model.RedeemStatus, date time.Time) error {
	if points <= 0 {
		return ErrInvalidPoints
	}
	entry := &model.RedeemEntry{
		Date:        date,
		UserID:      userID,
		OrderRef:    orderRef,
		TotalAmount: totalAmount,
		Points:      points,
		Status:      status,
	}
	entry.CreatedBy = userID.String()
	entry.UpdatedBy = userID.String()
	return s.redeemRepo.Append(tx, entry)
}

func (s *loyaltyLedger) RecordEarn(tx *gorm.DB, userID uuid.UUID, orderRef string, totalAmount decimal.Decimal, points int64, date time.Time) error {
	return s.record(tx, userID, orderRef, totalAmount, points, model.RedeemEarned, date)
}

func (s *loyaltyLedger) RecordUse(tx *gorm.DB, userID uuid.UUID, orderRef string, totalAmount decimal.Decimal, points int64, date time.Time) error {
	return s.record(tx, userID, orderRef, totalAmount, points, model.RedeemUsed, date)
}

func (s *loyaltyLedger) Entries(userID uuid.UUID) ([]model.RedeemEntry, error) {
	return s.redeemRepo.FindByUser(userID)
}

func (s *loyaltyLedger) TotalPoints(userID uuid.UUID) (*PointsSummary, error) {
	totals, err := s.redeemRepo.Totals(userID)
	if err != nil {
		return nil, err
	}
	return &PointsSummary{
		Earned:  totals.Earned,
		Used:    totals.Used,
		Balance: totals.Earned - totals.Used,
	}, nil
}
