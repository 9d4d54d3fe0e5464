package service

import (
	"time"

	"go-market-api/internal/model"
	"go-market-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CheckoutService interface {
	// Upsert adds the item to the user's checkout, replacing the quantity
	// when an active row already exists.
	Upsert(userID, itemID uuid.UUID, quantity int) (*model.CheckoutItem, error)
	Remove(userID, entryID uuid.UUID) error
	Clear(userID uuid.UUID) error
	List(userID uuid.UUID) ([]model.ListedItem, error)
}

type checkoutService struct {
	checkoutRepo repository.CheckoutRepository
	productRepo  repository.ProductRepository
	inventory    InventoryEngine
}

func NewCheckoutService(
	checkoutRepo repository.CheckoutRepository,
	productRepo repository.ProductRepository,
	inventory InventoryEngine,
) CheckoutService {
	return &checkoutService{
		checkoutRepo: checkoutRepo,
		productRepo:  productRepo,
		inventory:    inventory,
	}
}

func (s *checkoutService) Upsert(userID, itemID uuid.UUID, quantity int) (*model.CheckoutItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.productRepo.FindByID(itemID)
	if err != nil {
		return nil, ErrItemNotFound
	}
	amount := product.Price.Mul(decimal.NewFromInt(int64(quantity)))

	if existing, err := s.checkoutRepo.FindByUserItem(userID, itemID); err == nil && existing != nil {
		existing.Quantity = quantity
		existing.Price = product.Price
		existing.Amount = amount
		existing.CheckoutDate = time.Now()
		if err := s.checkoutRepo.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	entry := &model.CheckoutItem{
		UserID:       userID,
		ItemID:       itemID,
		Quantity:     quantity,
		Price:        product.Price,
		Amount:       amount,
		Status:       model.StatusActive,
		CheckoutDate: time.Now(),
	}
	if err := s.checkoutRepo.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *checkoutService) Remove(userID, entryID uuid.UUID) error {
	return s.checkoutRepo.Remove(entryID)
}

// Clear drops the user's checkout, typically after a completed order.
func (s *checkoutService) Clear(userID uuid.UUID) error {
	return s.checkoutRepo.RemoveAllForUser(userID)
}

func (s *checkoutService) List(userID uuid.UUID) ([]model.ListedItem, error) {
	entries, err := s.checkoutRepo.ListActive(userID)
	if err != nil {
		return nil, err
	}

	out := make([]model.ListedItem, 0, len(entries))
	for _, entry := range entries {
		item := model.ListedItem{
			ID:       entry.ID,
			UserID:   entry.UserID,
			ItemID:   entry.ItemID,
			Quantity: entry.Quantity,
			Price:    entry.Price,
			Amount:   entry.Amount,
			Status:   entry.Status,
			Date:     entry.CheckoutDate,
		}
		if product, err := s.productRepo.FindByID(entry.ItemID); err == nil {
			item.ItemName = product.ItemName
			item.Image = product.Image
			if summary, err := s.inventory.CurrentStock(entry.ItemID); err == nil {
				item.ItemsAvailable = summary.CurrentStock
			}
		}
		out = append(out, item)
	}
	return out, nil
}
