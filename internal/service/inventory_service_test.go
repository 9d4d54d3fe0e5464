package service

import (
	"testing"

	"go-market-api/internal/model"
	"go-market-api/internal/ws"
	"go-market-api/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestInventory() (InventoryEngine, *fakeLedger, *fakeProductRepo, *fakeHub) {
	ledger := &fakeLedger{}
	products := newFakeProductRepo()
	hub := &fakeHub{}
	engine := NewInventoryEngine(ledger, products, &fakeTxRunner{}, hub, logger.Get())
	return engine, ledger, products, hub
}

func TestRecordMovementRejectsNonPositiveQuantity(t *testing.T) {
	engine, ledger, _, _ := newTestInventory()

	for _, qty := range []int{0, -5} {
		_, _, err := engine.RecordMovement(nil, MovementInput{
			ItemID:   uuid.New(),
			Quantity: qty,
			Kind:     model.MovementSale,
		})
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}
	assert.Empty(t, ledger.entries)
}

func TestRecordMovementRejectsUnknownKind(t *testing.T) {
	engine, _, _, _ := newTestInventory()

	_, _, err := engine.RecordMovement(nil, MovementInput{
		ItemID:   uuid.New(),
		Quantity: 3,
		Kind:     model.MovementKind(7),
	})
	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestNetStockIsPurchasesMinusSales(t *testing.T) {
	engine, _, products, _ := newTestInventory()
	item := products.add(&model.Product{ItemName: "Basmati Rice 5kg"})

	record := func(qty int, kind model.MovementKind) {
		_, _, err := engine.RecordMovement(nil, MovementInput{
			ItemID: item.ID, Quantity: qty, Kind: kind,
			TransactionType: model.TransactionByAdjustment,
		})
		require.NoError(t, err)
	}

	record(100, model.MovementPurchase)
	record(30, model.MovementSale)
	record(20, model.MovementPurchase)
	record(45, model.MovementSale)

	summary, err := engine.CurrentStock(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 120, summary.TotalPurchase)
	assert.Equal(t, 75, summary.TotalSold)
	assert.Equal(t, 45, summary.CurrentStock)
	assert.False(t, summary.Oversold)
}

func TestCurrentStockUnknownItem(t *testing.T) {
	engine, _, _, _ := newTestInventory()

	_, err := engine.CurrentStock(uuid.New())
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestOversellAllowedAndObservable(t *testing.T) {
	engine, ledger, products, hub := newTestInventory()
	item := products.add(&model.Product{ItemName: "Organic Milk 1L"})

	_, _, err := engine.RecordMovement(nil, MovementInput{
		ItemID: item.ID, Quantity: 10, Kind: model.MovementPurchase,
	})
	require.NoError(t, err)

	// Selling more than on hand must succeed.
	_, _, err = engine.RecordMovement(nil, MovementInput{
		ItemID: item.ID, Quantity: 25, Kind: model.MovementSale,
		OrderRef: "order-1", TransactionType: model.TransactionByOrder,
	})
	require.NoError(t, err)
	assert.Len(t, ledger.entries, 2)

	summary, err := engine.CurrentStock(item.ID)
	require.NoError(t, err)
	assert.Equal(t, -15, summary.CurrentStock)
	assert.True(t, summary.Oversold)

	oversold := hub.eventsOfType(ws.EventOversold)
	require.Len(t, oversold, 1)
	assert.Equal(t, item.ID.String(), oversold[0].ItemID)
	assert.Equal(t, -15, oversold[0].CurrentStock)
}

func TestMovementEventCarriesLedgerNet(t *testing.T) {
	engine, _, products, hub := newTestInventory()
	item := products.add(&model.Product{ItemName: "Chai 500g"})

	_, _, err := engine.RecordMovement(nil, MovementInput{
		ItemID: item.ID, Quantity: 10, Kind: model.MovementPurchase,
	})
	require.NoError(t, err)
	_, _, err = engine.RecordMovement(nil, MovementInput{
		ItemID: item.ID, Quantity: 3, Kind: model.MovementSale,
	})
	require.NoError(t, err)

	events := hub.eventsOfType(ws.EventMovementRecorded)
	require.Len(t, events, 2)
	assert.Equal(t, 10, events[0].CurrentStock)
	// The event net already counts the movement it announces.
	assert.Equal(t, 7, events[1].CurrentStock)
}

func TestTransactionalMovementsBroadcastOnlyWhenPublished(t *testing.T) {
	engine, _, products, hub := newTestInventory()
	item := products.add(&model.Product{ItemName: "Dal 2kg"})

	_, _, err := engine.RecordMovement(nil, MovementInput{
		ItemID: item.ID, Quantity: 10, Kind: model.MovementPurchase,
	})
	require.NoError(t, err)
	require.Len(t, hub.eventsOfType(ws.EventMovementRecorded), 1)

	// Two sales of the same item inside one transaction: each event nets
	// the earlier uncommitted line, and neither is broadcast yet.
	tx := &gorm.DB{}
	_, first, err := engine.RecordMovement(tx, MovementInput{
		ItemID: item.ID, Quantity: 4, Kind: model.MovementSale,
	})
	require.NoError(t, err)
	_, second, err := engine.RecordMovement(tx, MovementInput{
		ItemID: item.ID, Quantity: 4, Kind: model.MovementSale,
	})
	require.NoError(t, err)

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, 6, first.CurrentStock)
	assert.Equal(t, 2, second.CurrentStock)
	assert.Len(t, hub.eventsOfType(ws.EventMovementRecorded), 1)

	engine.PublishEvents(*first, *second)
	assert.Len(t, hub.eventsOfType(ws.EventMovementRecorded), 3)
}

func TestMovementHistoryIsAppendOnlyChronological(t *testing.T) {
	engine, _, products, _ := newTestInventory()
	item := products.add(&model.Product{ItemName: "Atta 10kg"})

	quantities := []int{5, 8, 3}
	for _, qty := range quantities {
		_, _, err := engine.RecordMovement(nil, MovementInput{
			ItemID: item.ID, Quantity: qty, Kind: model.MovementPurchase,
		})
		require.NoError(t, err)
	}

	history, err := engine.MovementHistory(item.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	for i, m := range history {
		assert.Equal(t, quantities[i], m.Quantity)
	}
}

func TestBulkStockSnapshotCoversMissingItems(t *testing.T) {
	engine, _, products, _ := newTestInventory()
	stocked := products.add(&model.Product{ItemName: "Ghee 1kg"})
	unstocked := products.add(&model.Product{ItemName: "New Item"})

	_, _, err := engine.RecordMovement(nil, MovementInput{
		ItemID: stocked.ID, Quantity: 12, Kind: model.MovementPurchase,
	})
	require.NoError(t, err)

	snapshot, err := engine.BulkStockSnapshot([]uuid.UUID{stocked.ID, unstocked.ID})
	require.NoError(t, err)
	assert.Equal(t, 12, snapshot[stocked.ID])
	// Items with no ledger rows read as zero, not as an error.
	assert.Equal(t, 0, snapshot[unstocked.ID])
}

func TestAdjustStockGroupsMovementsUnderOneReference(t *testing.T) {
	engine, ledger, products, _ := newTestInventory()
	itemA := products.add(&model.Product{ItemName: "Item A"})
	itemB := products.add(&model.Product{ItemName: "Item B"})
	actor := uuid.New()

	err := engine.AdjustStock([]AdjustmentItem{
		{ItemID: itemA.ID, Quantity: 10, Kind: model.MovementPurchase},
		{ItemID: itemB.ID, Quantity: 4, Kind: model.MovementSale},
	}, actor)
	require.NoError(t, err)

	require.Len(t, ledger.entries, 2)
	assert.Equal(t, ledger.entries[0].OrderRef, ledger.entries[1].OrderRef)
	for _, e := range ledger.entries {
		assert.Equal(t, model.TransactionByAdjustment, e.TransactionType)
		assert.Equal(t, actor, e.UserID)
	}
}

func TestAdjustStockValidatesEveryLine(t *testing.T) {
	engine, ledger, products, _ := newTestInventory()
	item := products.add(&model.Product{ItemName: "Item"})

	err := engine.AdjustStock([]AdjustmentItem{
		{ItemID: item.ID, Quantity: 5, Kind: model.MovementPurchase},
		{ItemID: item.ID, Quantity: -1, Kind: model.MovementPurchase},
	}, uuid.New())
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Empty(t, ledger.entries)
}
