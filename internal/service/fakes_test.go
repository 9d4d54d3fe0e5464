package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"go-market-api/internal/gateway"
	"go-market-api/internal/model"
	"go-market-api/internal/repository"
	"go-market-api/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// fakeTxRunner satisfies TxRunner without a database. The callback receives a
// non-nil *gorm.DB so callers behave as they do inside a real transaction;
// the in-memory fakes below ignore the handle itself.
type fakeTxRunner struct {
	calls int
}

func (f *fakeTxRunner) Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error {
	f.calls++
	return fc(&gorm.DB{})
}

type fakeHub struct {
	mu     sync.Mutex
	events []ws.StockEvent
}

func (f *fakeHub) PublishStockEvent(event ws.StockEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakeHub) eventsOfType(eventType string) []ws.StockEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []ws.StockEvent
	for _, e := range f.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

// fakeLedger is an in-memory append-only movement store.
type fakeLedger struct {
	entries   []model.StockMovement
	appendErr error
}

func (f *fakeLedger) Append(tx *gorm.DB, movement *model.StockMovement) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	if movement.ID == uuid.Nil {
		movement.ID = uuid.New()
	}
	f.entries = append(f.entries, *movement)
	return nil
}

func (f *fakeLedger) NetByItem(tx *gorm.DB, itemID uuid.UUID) (*repository.StockNet, error) {
	net := repository.StockNet{ItemID: itemID}
	for _, e := range f.entries {
		if e.ItemID != itemID {
			continue
		}
		switch e.Kind {
		case model.MovementPurchase:
			net.TotalPurchase += e.Quantity
		case model.MovementSale:
			net.TotalSold += e.Quantity
		}
	}
	return &net, nil
}

func (f *fakeLedger) NetBulk(itemIDs []uuid.UUID) (map[uuid.UUID]repository.StockNet, error) {
	out := make(map[uuid.UUID]repository.StockNet)
	for _, id := range itemIDs {
		net, _ := f.NetByItem(nil, id)
		if net.TotalPurchase != 0 || net.TotalSold != 0 {
			out[id] = *net
		}
	}
	return out, nil
}

func (f *fakeLedger) HistoryByItem(itemID uuid.UUID) ([]model.StockMovement, error) {
	var out []model.StockMovement
	for _, e := range f.entries {
		if e.ItemID == itemID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeLedger) FindAll() ([]model.StockMovement, error) {
	return f.entries, nil
}

type fakeProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (f *fakeProductRepo) add(product *model.Product) *model.Product {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if product.Status == 0 {
		product.Status = model.StatusActive
	}
	f.products[product.ID] = product
	return product
}

func (f *fakeProductRepo) Create(tx *gorm.DB, product *model.Product) error {
	f.add(product)
	return nil
}

func (f *fakeProductRepo) FindAll() ([]model.Product, error) {
	var out []model.Product
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProductRepo) FindActive() ([]model.Product, error) {
	var out []model.Product
	for _, p := range f.products {
		if p.Status == model.StatusActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) FindByCategory(categoryID uuid.UUID) ([]model.Product, error) {
	var out []model.Product
	for _, p := range f.products {
		if p.CategoryID == categoryID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Search(stateID uuid.UUID, term string) ([]model.Product, error) {
	return f.FindActive()
}

func (f *fakeProductRepo) Update(product *model.Product) error {
	if _, ok := f.products[product.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) Remove(id uuid.UUID, removedBy string) error {
	p, ok := f.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Status = model.StatusRemoved
	p.DeletedBy = removedBy
	return nil
}

func (f *fakeProductRepo) ExistsActive(id uuid.UUID) (bool, error) {
	p, ok := f.products[id]
	return ok && p.Status == model.StatusActive, nil
}

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*model.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[uuid.UUID]*model.Category)}
}

func (f *fakeCategoryRepo) add(category *model.Category) *model.Category {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	if category.Status == 0 {
		category.Status = model.StatusActive
	}
	f.categories[category.ID] = category
	return category
}

func (f *fakeCategoryRepo) Create(category *model.Category) error {
	f.add(category)
	return nil
}

func (f *fakeCategoryRepo) FindAll() ([]model.Category, error) {
	var out []model.Category
	for _, c := range f.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCategoryRepo) FindActive() ([]model.Category, error) {
	var out []model.Category
	for _, c := range f.categories {
		if c.Status == model.StatusActive {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) FindByID(id uuid.UUID) (*model.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (f *fakeCategoryRepo) FindByName(name string) (*model.Category, error) {
	for _, c := range f.categories {
		if c.CategoryName == name {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCategoryRepo) Update(category *model.Category) error {
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryRepo) Remove(id uuid.UUID, removedBy string) error {
	c, ok := f.categories[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Status = model.StatusRemoved
	return nil
}

func (f *fakeCategoryRepo) ExistsActive(id uuid.UUID) (bool, error) {
	c, ok := f.categories[id]
	return ok && c.Status == model.StatusActive, nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*model.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*model.Order)}
}

func (f *fakeOrderRepo) Create(order *model.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	f.orders[order.OrderUUID] = order
	return nil
}

func (f *fakeOrderRepo) FindByUUID(orderUUID string) (*model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderUUID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderRepo) FindByUser(userID uuid.UUID) ([]model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) FindAll() ([]model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Order
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeOrderRepo) FindByDateRange(from, to time.Time) ([]model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Order
	for _, o := range f.orders {
		if !o.OrderDate.Before(from) && !o.OrderDate.After(to) {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) MarkPaid(tx *gorm.DB, orderUUID string, receipt repository.PaidReceipt, paidAt time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderUUID]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	if order.Payment != model.PaymentPending {
		return false, nil
	}
	order.Payment = model.PaymentPaid
	order.TransactionID = receipt.TransactionID
	order.AuthCode = receipt.AuthCode
	order.ResponseCode = receipt.ResponseCode
	order.ResponseMessage = receipt.ResponseMessage
	order.PaidAt = &paidAt
	return true, nil
}

func (f *fakeOrderRepo) UpdateStatus(orderUUID string, payment, orderCompleted int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderUUID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.Payment = payment
	order.OrderCompleted = orderCompleted
	return nil
}

type fakeRedeemRepo struct {
	entries   []model.RedeemEntry
	appendErr error
}

func (f *fakeRedeemRepo) Append(tx *gorm.DB, entry *model.RedeemEntry) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeRedeemRepo) FindByUser(userID uuid.UUID) ([]model.RedeemEntry, error) {
	var out []model.RedeemEntry
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRedeemRepo) Totals(userID uuid.UUID) (*repository.PointsTotals, error) {
	totals := repository.PointsTotals{}
	for _, e := range f.entries {
		if e.UserID != userID {
			continue
		}
		switch e.Status {
		case model.RedeemEarned:
			totals.Earned += e.Points
		case model.RedeemUsed:
			totals.Used += e.Points
		}
	}
	return &totals, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (f *fakeUserRepo) add(user *model.User) *model.User {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByPhone(phone string) (*model.User, error) {
	for _, u := range f.users {
		if u.PhoneNumber == phone {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Create(user *model.User) error {
	f.add(user)
	return nil
}

func (f *fakeUserRepo) Update(user *model.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) UpdatePassword(userID uuid.UUID, hashedPassword string) error {
	u, ok := f.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Password = hashedPassword
	return nil
}

func (f *fakeUserRepo) SetOTP(userID uuid.UUID, otp string) error {
	u, ok := f.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.ConfirmOTP = &otp
	u.OTPTries = 0
	return nil
}

func (f *fakeUserRepo) Confirm(userID uuid.UUID) error {
	u, ok := f.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	u.IsConfirmed = true
	u.ConfirmOTP = nil
	u.ConfirmedAt = &now
	return nil
}

func (f *fakeUserRepo) FindAll() ([]model.User, error) {
	var out []model.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

// fakeGateway scripts the hosted-payment session and the transaction query.
type fakeGateway struct {
	session    *gateway.Session
	sessionErr error

	txn                *gateway.Transaction
	queryErr           error
	queriedAccessCodes []string
}

func (f *fakeGateway) CreateSession(ctx context.Context, customer gateway.Customer, payment gateway.Payment) (*gateway.Session, error) {
	if f.sessionErr != nil {
		return nil, f.sessionErr
	}
	if f.session != nil {
		return f.session, nil
	}
	return &gateway.Session{AccessCode: "AC-test", RedirectURL: "https://pay.example/AC-test"}, nil
}

func (f *fakeGateway) QueryTransaction(ctx context.Context, accessCode string) (*gateway.Transaction, error) {
	f.queriedAccessCodes = append(f.queriedAccessCodes, accessCode)
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	if f.txn == nil {
		return nil, errors.New("no scripted transaction")
	}
	return f.txn, nil
}

type fakeMailer struct {
	sent    []string
	sendErr error
}

func (f *fakeMailer) SendEmail(from, to, subject, html string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, to)
	return nil
}

type fakeSMS struct {
	sent    []string
	sendErr error
}

func (f *fakeSMS) SendSMS(to, body string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, to)
	return nil
}

type fakeWishlistRepo struct {
	entries map[uuid.UUID]*model.Wishlist
}

func newFakeWishlistRepo() *fakeWishlistRepo {
	return &fakeWishlistRepo{entries: make(map[uuid.UUID]*model.Wishlist)}
}

func (f *fakeWishlistRepo) FindActive(userID, itemID uuid.UUID) (*model.Wishlist, error) {
	for _, e := range f.entries {
		if e.UserID == userID && e.ItemID == itemID && e.Status == model.StatusActive {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeWishlistRepo) Create(entry *model.Wishlist) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	f.entries[entry.ID] = entry
	return nil
}

func (f *fakeWishlistRepo) Delete(id uuid.UUID) error {
	if _, ok := f.entries[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.entries, id)
	return nil
}

func (f *fakeWishlistRepo) ListActive(userID uuid.UUID) ([]model.Wishlist, error) {
	var out []model.Wishlist
	for _, e := range f.entries {
		if e.UserID == userID && e.Status == model.StatusActive {
			out = append(out, *e)
		}
	}
	return out, nil
}

type fakeCheckoutRepo struct {
	entries map[uuid.UUID]*model.CheckoutItem
}

func newFakeCheckoutRepo() *fakeCheckoutRepo {
	return &fakeCheckoutRepo{entries: make(map[uuid.UUID]*model.CheckoutItem)}
}

func (f *fakeCheckoutRepo) FindByUserItem(userID, itemID uuid.UUID) (*model.CheckoutItem, error) {
	for _, e := range f.entries {
		if e.UserID == userID && e.ItemID == itemID && e.Status == model.StatusActive {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCheckoutRepo) Create(entry *model.CheckoutItem) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	f.entries[entry.ID] = entry
	return nil
}

func (f *fakeCheckoutRepo) Update(entry *model.CheckoutItem) error {
	if _, ok := f.entries[entry.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.entries[entry.ID] = entry
	return nil
}

func (f *fakeCheckoutRepo) Remove(id uuid.UUID) error {
	if _, ok := f.entries[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.entries, id)
	return nil
}

func (f *fakeCheckoutRepo) RemoveAllForUser(userID uuid.UUID) error {
	for id, e := range f.entries {
		if e.UserID == userID {
			delete(f.entries, id)
		}
	}
	return nil
}

func (f *fakeCheckoutRepo) ListActive(userID uuid.UUID) ([]model.CheckoutItem, error) {
	var out []model.CheckoutItem
	for _, e := range f.entries {
		if e.UserID == userID && e.Status == model.StatusActive {
			out = append(out, *e)
		}
	}
	return out, nil
}
