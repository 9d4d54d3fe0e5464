package service

import (
	"testing"

	"go-market-api/internal/model"
	"go-market-api/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWishlistFixture() (WishlistService, CheckoutService, *fakeProductRepo) {
	products := newFakeProductRepo()
	ledger := &fakeLedger{}
	inventory := NewInventoryEngine(ledger, products, &fakeTxRunner{}, &fakeHub{}, logger.Get())
	wishlist := NewWishlistService(newFakeWishlistRepo(), products, inventory, logger.Get())
	checkout := NewCheckoutService(newFakeCheckoutRepo(), products, inventory)
	return wishlist, checkout, products
}

func TestWishlistToggleAddsThenRemoves(t *testing.T) {
	wishlist, _, products := newWishlistFixture()
	user := uuid.New()
	item := products.add(&model.Product{ItemName: "Mango Pickle", Price: decimal.NewFromInt(6)})

	first, err := wishlist.Toggle(user, item.ID, 1)
	require.NoError(t, err)
	assert.True(t, first.Added)

	listed, err := wishlist.List(user)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Mango Pickle", listed[0].ItemName)

	// Toggling again removes the entry.
	second, err := wishlist.Toggle(user, item.ID, 1)
	require.NoError(t, err)
	assert.False(t, second.Added)

	listed, err = wishlist.List(user)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestWishlistToggleIsPerUser(t *testing.T) {
	wishlist, _, products := newWishlistFixture()
	item := products.add(&model.Product{ItemName: "Chai"})
	alice := uuid.New()
	bob := uuid.New()

	_, err := wishlist.Toggle(alice, item.ID, 1)
	require.NoError(t, err)

	// Bob's toggle must add, not remove Alice's entry.
	result, err := wishlist.Toggle(bob, item.ID, 2)
	require.NoError(t, err)
	assert.True(t, result.Added)

	aliceList, _ := wishlist.List(alice)
	assert.Len(t, aliceList, 1)
}

func TestWishlistToggleUnknownItem(t *testing.T) {
	wishlist, _, _ := newWishlistFixture()

	_, err := wishlist.Toggle(uuid.New(), uuid.New(), 1)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestCheckoutUpsertReplacesQuantity(t *testing.T) {
	_, checkout, products := newWishlistFixture()
	user := uuid.New()
	item := products.add(&model.Product{ItemName: "Dal 2kg", Price: decimal.NewFromInt(8)})

	first, err := checkout.Upsert(user, item.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Quantity)
	assert.True(t, first.Amount.Equal(decimal.NewFromInt(16)))

	// A repeat add replaces quantity instead of duplicating the row.
	second, err := checkout.Upsert(user, item.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Quantity)
	assert.True(t, second.Amount.Equal(decimal.NewFromInt(40)))

	listed, err := checkout.List(user)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestCheckoutRejectsNonPositiveQuantity(t *testing.T) {
	_, checkout, products := newWishlistFixture()
	item := products.add(&model.Product{ItemName: "Dal"})

	_, err := checkout.Upsert(uuid.New(), item.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCheckoutClearRemovesOnlyThatUser(t *testing.T) {
	_, checkout, products := newWishlistFixture()
	item := products.add(&model.Product{ItemName: "Dal"})
	alice := uuid.New()
	bob := uuid.New()

	_, err := checkout.Upsert(alice, item.ID, 1)
	require.NoError(t, err)
	_, err = checkout.Upsert(bob, item.ID, 3)
	require.NoError(t, err)

	require.NoError(t, checkout.Clear(alice))

	aliceList, _ := checkout.List(alice)
	bobList, _ := checkout.List(bob)
	assert.Empty(t, aliceList)
	assert.Len(t, bobList, 1)
}
