package service

import (
	"database/sql"

	"go-market-api/internal/ws"

	"gorm.io/gorm"
)

// TxRunner abstracts gorm's transaction entry point so multi-step
// orchestrations can be exercised with fakes. *gorm.DB satisfies it.
type TxRunner interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}

// StockEventPublisher receives ledger change events. *ws.Hub satisfies it.
type StockEventPublisher interface {
	PublishStockEvent(event ws.StockEvent)
}
