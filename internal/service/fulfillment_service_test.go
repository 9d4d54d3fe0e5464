package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-market-api/internal/gateway"
	"go-market-api/internal/model"
	"go-market-api/internal/ws"
	"go-market-api/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fulfillmentFixture struct {
	svc      FulfillmentService
	gw       *fakeGateway
	orders   *fakeOrderRepo
	ledger   *fakeLedger
	redeem   *fakeRedeemRepo
	users    *fakeUserRepo
	mail     *fakeMailer
	sms      *fakeSMS
	products *fakeProductRepo
	hub      *fakeHub
}

func newFulfillmentFixture() *fulfillmentFixture {
	ledger := &fakeLedger{}
	products := newFakeProductRepo()
	hub := &fakeHub{}
	orders := newFakeOrderRepo()
	redeem := &fakeRedeemRepo{}
	users := newFakeUserRepo()
	gw := &fakeGateway{}
	mail := &fakeMailer{}
	sms := &fakeSMS{}
	log := logger.Get()

	inventory := NewInventoryEngine(ledger, products, &fakeTxRunner{}, hub, log)
	loyalty := NewLoyaltyLedger(redeem)
	svc := NewFulfillmentService(gw, orders, inventory, loyalty, users, mail, sms, &fakeTxRunner{}, log)

	return &fulfillmentFixture{
		svc: svc, gw: gw, orders: orders, ledger: ledger, redeem: redeem,
		users: users, mail: mail, sms: sms, products: products, hub: hub,
	}
}

func (f *fulfillmentFixture) seedOrder(total string, redeemUsed int64, lines ...int) *model.Order {
	order := &model.Order{
		OrderUUID:        uuid.NewString(),
		UserID:           f.users.add(&model.User{FirstName: "Priya", LastName: "Nair", Email: "priya@example.com"}).ID,
		OrderDate:        time.Now(),
		TotalAmount:      decimal.RequireFromString(total),
		RedeemPointsUsed: redeemUsed,
		Payment:          model.PaymentPending,
		Email:            "priya@example.com",
		FirstName:        "Priya",
		LastName:         "Nair",
	}
	for i, qty := range lines {
		item := f.products.add(&model.Product{ItemName: "Line item"})
		order.Items = append(order.Items, model.OrderItem{
			OrderUUID: order.OrderUUID,
			ItemID:    item.ID,
			ItemName:  item.ItemName,
			Quantity:  qty,
			Price:     decimal.NewFromInt(int64(10 + i)),
		})
	}
	_ = f.orders.Create(order)
	return order
}

func (f *fulfillmentFixture) scriptSuccess(order *model.Order) {
	f.gw.txn = &gateway.Transaction{
		TransactionID:     123456,
		TransactionStatus: true,
		AuthorisationCode: "A2000",
		ResponseCode:      "00",
		ResponseMessage:   "A2000",
		InvoiceNumber:     order.OrderUUID,
		Customer:          gateway.Customer{Phone: "+61400000000"},
	}
}

func TestVerifyTokenAppliesAllSideEffectsOnce(t *testing.T) {
	f := newFulfillmentFixture()
	order := f.seedOrder("250.00", 0, 2, 1)
	f.scriptSuccess(order)

	receipt, err := f.svc.VerifyToken(context.Background(), "AC-1")
	require.NoError(t, err)
	assert.True(t, receipt.TransactionStatus)
	assert.Equal(t, order.OrderUUID, receipt.InvoiceNumber)

	stored, err := f.orders.FindByUUID(order.OrderUUID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPaid, stored.Payment)
	assert.Equal(t, "123456", stored.TransactionID)
	assert.Equal(t, "A2000", stored.AuthCode)
	require.NotNil(t, stored.PaidAt)

	// One SALE per line item, tagged as an order movement.
	require.Len(t, f.ledger.entries, 2)
	for i, e := range f.ledger.entries {
		assert.Equal(t, model.MovementSale, e.Kind)
		assert.Equal(t, order.OrderUUID, e.OrderRef)
		assert.Equal(t, model.TransactionByOrder, e.TransactionType)
		assert.Equal(t, order.Items[i].Quantity, e.Quantity)
	}

	// ceil(250/100) = 3 points earned, no USED entry.
	require.Len(t, f.redeem.entries, 1)
	assert.Equal(t, model.RedeemEarned, f.redeem.entries[0].Status)
	assert.Equal(t, int64(3), f.redeem.entries[0].Points)

	assert.Equal(t, []string{"priya@example.com"}, f.mail.sent)
	assert.Equal(t, []string{"+61400000000"}, f.sms.sent)
}

func TestVerifyTokenReplayIsSideEffectFree(t *testing.T) {
	f := newFulfillmentFixture()
	order := f.seedOrder("250.00", 0, 2)
	f.scriptSuccess(order)

	first, err := f.svc.VerifyToken(context.Background(), "AC-1")
	require.NoError(t, err)

	second, err := f.svc.VerifyToken(context.Background(), "AC-1")
	require.NoError(t, err)

	// Same verdict, no duplicated ledger or loyalty writes, one email.
	assert.Equal(t, first, second)
	assert.Len(t, f.ledger.entries, 1)
	assert.Len(t, f.redeem.entries, 1)
	assert.Len(t, f.mail.sent, 1)
}

func TestVerifyTokenBelowThresholdEarnsNothing(t *testing.T) {
	f := newFulfillmentFixture()
	order := f.seedOrder("99.99", 0, 1)
	f.scriptSuccess(order)

	_, err := f.svc.VerifyToken(context.Background(), "AC-1")
	require.NoError(t, err)
	assert.Empty(t, f.redeem.entries)
}

func TestVerifyTokenExactThresholdEarnsOnePoint(t *testing.T) {
	f := newFulfillmentFixture()
	order := f.seedOrder("100.00", 0, 1)
	f.scriptSuccess(order)

	_, err := f.svc.VerifyToken(context.Background(), "AC-1")
	require.NoError(t, err)
	require.Len(t, f.redeem.entries, 1)
	assert.Equal(t, int64(1), f.redeem.entries[0].Points)
}

func TestVerifyTokenRecordsUsedPoints(t *testing.T) {
	f := newFulfillmentFixture()
	order := f.seedOrder("150.50", 10, 1)
	f.scriptSuccess(order)

	_, err := f.svc.VerifyToken(context.Background(), "AC-1")
	require.NoError(t, err)

	require.Len(t, f.redeem.entries, 2)
	assert.Equal(t, model.RedeemEarned, f.redeem.entries[0].Status)
	assert.Equal(t, int64(2), f.redeem.entries[0].Points) // ceil(150.50/100)
	assert.Equal(t, model.RedeemUsed, f.redeem.entries[1].Status)
	assert.Equal(t, int64(10), f.redeem.entries[1].Points)
}

func TestVerifyTokenGatewayFailure(t *testing.T) {
	f := newFulfillmentFixture()
	f.gw.queryErr = errors.New("connection refused")

	_, err := f.svc.VerifyToken(context.Background(), "AC-1")
	assert.ErrorIs(t, err, ErrPaymentFailed)
}

func TestVerifyTokenDeclinedPayment(t *testing.T) {
	f := newFulfillmentFixture()
	order := f.seedOrder("50.00", 0, 1)
	f.gw.txn = &gateway.Transaction{
		TransactionStatus: false,
		InvoiceNumber:     order.OrderUUID,
		ResponseMessage:   "D4405 Do Not Honour",
	}

	_, err := f.svc.VerifyToken(context.Background(), "AC-1")
	assert.ErrorIs(t, err, ErrPaymentFailed)

	stored, _ := f.orders.FindByUUID(order.OrderUUID)
	assert.Equal(t, model.PaymentPending, stored.Payment)
	assert.Empty(t, f.ledger.entries)
}

func TestVerifyTokenUnknownInvoice(t *testing.T) {
	f := newFulfillmentFixture()
	f.gw.txn = &gateway.Transaction{
		TransactionStatus: true,
		InvoiceNumber:     "no-such-order",
	}

	_, err := f.svc.VerifyToken(context.Background(), "AC-1")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestVerifyTokenNotificationFailureDoesNotFailPayment(t *testing.T) {
	f := newFulfillmentFixture()
	order := f.seedOrder("120.00", 0, 1)
	f.scriptSuccess(order)
	f.mail.sendErr = errors.New("smtp down")
	f.sms.sendErr = errors.New("sms down")

	receipt, err := f.svc.VerifyToken(context.Background(), "AC-1")
	require.NoError(t, err)
	assert.True(t, receipt.TransactionStatus)

	stored, _ := f.orders.FindByUUID(order.OrderUUID)
	assert.Equal(t, model.PaymentPaid, stored.Payment)
}

func TestVerifyTokenOversellsRatherThanFailing(t *testing.T) {
	f := newFulfillmentFixture()
	order := f.seedOrder("80.00", 0, 5)
	f.scriptSuccess(order)

	// No purchases on the ledger at all: confirming the order drives net
	// stock negative, which must not block the payment.
	receipt, err := f.svc.VerifyToken(context.Background(), "AC-1")
	require.NoError(t, err)
	assert.True(t, receipt.TransactionStatus)

	net, err := f.ledger.NetByItem(nil, order.Items[0].ItemID)
	require.NoError(t, err)
	assert.Equal(t, -5, net.Current())

	// The oversell is broadcast with the committed net.
	oversold := f.hub.eventsOfType(ws.EventOversold)
	require.Len(t, oversold, 1)
	assert.Equal(t, -5, oversold[0].CurrentStock)

	// Under the threshold, so no points either way.
	assert.Empty(t, f.redeem.entries)
}

func TestVerifyTokenRollbackBroadcastsNothing(t *testing.T) {
	f := newFulfillmentFixture()
	order := f.seedOrder("250.00", 0, 2)
	f.scriptSuccess(order)
	f.redeem.appendErr = errors.New("redeem table unavailable")

	_, err := f.svc.VerifyToken(context.Background(), "AC-1")
	require.Error(t, err)

	// The failed confirmation must not leak stock events to clients.
	assert.Empty(t, f.hub.eventsOfType(ws.EventMovementRecorded))
	assert.Empty(t, f.hub.eventsOfType(ws.EventOversold))
	assert.Empty(t, f.mail.sent)
}

func TestEarnedPoints(t *testing.T) {
	cases := []struct {
		total  string
		points int64
	}{
		{"0", 0},
		{"99.99", 0},
		{"100", 1},
		{"100.01", 2},
		{"250", 3},
		{"300", 3},
		{"1000.50", 11},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.points, earnedPoints(decimal.RequireFromString(tc.total)), "total %s", tc.total)
	}
}
