package service

import (
	"errors"
	"fmt"
	"time"

	"go-market-api/internal/model"
	"go-market-api/internal/repository"
	"go-market-api/internal/ws"
	"go-market-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrInvalidKind     = errors.New("movement kind must be SALE (1) or PURCHASE (2)")
	ErrItemNotFound    = errors.New("item not found")
)

// MovementInput describes one ledger append.
type MovementInput struct {
	ItemID          uuid.UUID
	Quantity        int
	Kind            model.MovementKind
	UserID          uuid.UUID
	OrderRef        string
	TransactionType string
	Date            time.Time
}

// AdjustmentItem is one line of a manual stock adjustment request.
type AdjustmentItem struct {
	ItemID   uuid.UUID          `json:"item_id" validate:"uuid_required"`
	Quantity int                `json:"quantity" validate:"required,gt=0"`
	Kind     model.MovementKind `json:"status" validate:"required,oneof=1 2"`
}

// InventoryEngine derives availability by netting the movement ledger. It is
// an accounting ledger, not a reservation system: movements never fail for
// insufficient stock, and a negative net is surfaced as an oversold event
// rather than an error.
type InventoryEngine interface {
	CurrentStock(itemID uuid.UUID) (*model.StockSummary, error)
	// RecordMovement appends one immutable entry. With a nil tx the append
	// is committed directly and the resulting event is broadcast before
	// returning. With a non-nil tx the append joins the caller's
	// transaction; the returned event must be handed to PublishEvents once
	// that transaction commits, so a rollback broadcasts nothing.
	RecordMovement(tx *gorm.DB, in MovementInput) (*model.StockMovement, *ws.StockEvent, error)
	// PublishEvents broadcasts events held back during a transaction.
	PublishEvents(events ...ws.StockEvent)
	MovementHistory(itemID uuid.UUID) ([]model.StockMovement, error)
	BulkStockSnapshot(itemIDs []uuid.UUID) (map[uuid.UUID]int, error)
	AllStock() ([]model.StockSummary, error)
	AdjustStock(items []AdjustmentItem, actorID uuid.UUID) error
}

type inventoryEngine struct {
	ledger      repository.LedgerRepository
	productRepo repository.ProductRepository
	db          TxRunner
	hub         StockEventPublisher
	log         *logrus.Logger
}

func NewInventoryEngine(
	ledger repository.LedgerRepository,
	productRepo repository.ProductRepository,
	db TxRunner,
	hub StockEventPublisher,
	log *logrus.Logger,
) InventoryEngine {
	return &inventoryEngine{
		ledger:      ledger,
		productRepo: productRepo,
		db:          db,
		hub:         hub,
		log:         log,
	}
}

func (s *inventoryEngine) CurrentStock(itemID uuid.UUID) (*model.StockSummary, error) {
	product, err := s.productRepo.FindByID(itemID)
	if err != nil {
		return nil, ErrItemNotFound
	}

	net, err := s.ledger.NetByItem(nil, itemID)
	if err != nil {
		return nil, err
	}

	return &model.StockSummary{
		ItemID:        itemID,
		ItemName:      product.ItemName,
		Image:         product.Image,
		TotalPurchase: net.TotalPurchase,
		TotalSold:     net.TotalSold,
		CurrentStock:  net.Current(),
		Oversold:      net.Current() < 0,
	}, nil
}

func (s *inventoryEngine) RecordMovement(tx *gorm.DB, in MovementInput) (*model.StockMovement, *ws.StockEvent, error) {
	if in.Quantity <= 0 {
		return nil, nil, ErrInvalidQuantity
	}
	if in.Kind != model.MovementSale && in.Kind != model.MovementPurchase {
		return nil, nil, ErrInvalidKind
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	movement := &model.StockMovement{
		Date:            date,
		UserID:          in.UserID,
		OrderRef:        in.OrderRef,
		ItemID:          in.ItemID,
		Quantity:        in.Quantity,
		Kind:            in.Kind,
		TransactionType: in.TransactionType,
	}
	movement.CreatedBy = in.UserID.String()
	movement.UpdatedBy = in.UserID.String()

	if err := s.ledger.Append(tx, movement); err != nil {
		return nil, nil, err
	}

	// Reading through tx makes the net include the entry just appended and
	// any earlier uncommitted entries of the same transaction. A SALE that
	// drives the net below zero is an oversell: allowed, but observable.
	net, err := s.ledger.NetByItem(tx, in.ItemID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"item_id": in.ItemID,
			"error":   err.Error(),
		}).Warn("net stock unavailable for broadcast")
		return movement, nil, nil
	}

	current := net.Current()
	event := &ws.StockEvent{
		Type:            ws.EventMovementRecorded,
		ItemID:          in.ItemID.String(),
		Quantity:        in.Quantity,
		Kind:            int(in.Kind),
		TransactionType: in.TransactionType,
		CurrentStock:    current,
	}
	if current < 0 {
		event.Type = ws.EventOversold
		event.Message = fmt.Sprintf("item %s oversold: net stock %d", in.ItemID, current)
	}

	if tx == nil {
		s.PublishEvents(*event)
	}
	return movement, event, nil
}

func (s *inventoryEngine) PublishEvents(events ...ws.StockEvent) {
	for _, event := range events {
		if event.Type == ws.EventOversold {
			s.log.WithFields(logrus.Fields{
				"item_id":   event.ItemID,
				"net_stock": event.CurrentStock,
			}).Warn("item oversold")
		}
		s.hub.PublishStockEvent(event)
	}
}

func (s *inventoryEngine) MovementHistory(itemID uuid.UUID) ([]model.StockMovement, error) {
	return s.ledger.HistoryByItem(itemID)
}

func (s *inventoryEngine) BulkStockSnapshot(itemIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	nets, err := s.ledger.NetBulk(itemIDs)
	if err != nil {
		return nil, err
	}

	snapshot := make(map[uuid.UUID]int, len(nets))
	for id, net := range nets {
		snapshot[id] = net.Current()
	}
	return snapshot, nil
}

func (s *inventoryEngine) AllStock() ([]model.StockSummary, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}

	nets, err := s.ledger.NetBulk(ids)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.StockSummary, 0, len(products))
	for _, p := range products {
		net := nets[p.ID]
		summaries = append(summaries, model.StockSummary{
			ItemID:        p.ID,
			ItemName:      p.ItemName,
			Image:         p.Image,
			TotalPurchase: net.TotalPurchase,
			TotalSold:     net.TotalSold,
			CurrentStock:  net.Current(),
			Oversold:      net.Current() < 0,
		})
	}
	return summaries, nil
}

func (s *inventoryEngine) AdjustStock(items []AdjustmentItem, actorID uuid.UUID) error {
	if len(items) == 0 {
		return ErrInvalidQuantity
	}
	for _, it := range items {
		if errs := validator.ValidateStruct(it); len(errs) > 0 {
			return fmt.Errorf("%w: field %s failed on %s", ErrInvalidQuantity, errs[0].FailedField, errs[0].Tag)
		}
	}

	// One adjustment reference groups the whole stock-take correction.
	adjustmentRef := uuid.NewString()
	now := time.Now()

	events := make([]ws.StockEvent, 0, len(items))
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, it := range items {
			_, event, err := s.RecordMovement(tx, MovementInput{
				ItemID:          it.ItemID,
				Quantity:        it.Quantity,
				Kind:            it.Kind,
				UserID:          actorID,
				OrderRef:        adjustmentRef,
				TransactionType: model.TransactionByAdjustment,
				Date:            now,
			})
			if err != nil {
				return err
			}
			if event != nil {
				events = append(events, *event)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.PublishEvents(events...)
	return nil
}
