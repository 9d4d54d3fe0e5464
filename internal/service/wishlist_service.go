package service

import (
	"time"

	"go-market-api/internal/model"
	"go-market-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ToggleResult reports which way a wishlist toggle went.
type ToggleResult struct {
	Added   bool   `json:"added"`
	Message string `json:"message"`
}

type WishlistService interface {
	// Toggle adds the item for the user, or removes it when an active
	// entry already exists.
	Toggle(userID, itemID uuid.UUID, quantity int) (*ToggleResult, error)
	List(userID uuid.UUID) ([]model.ListedItem, error)
}

type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
	inventory    InventoryEngine
	log          *logrus.Logger
}

func NewWishlistService(
	wishlistRepo repository.WishlistRepository,
	productRepo repository.ProductRepository,
	inventory InventoryEngine,
	log *logrus.Logger,
) WishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
		inventory:    inventory,
		log:          log,
	}
}

func (s *wishlistService) Toggle(userID, itemID uuid.UUID, quantity int) (*ToggleResult, error) {
	if quantity <= 0 {
		quantity = 1
	}

	if existing, err := s.wishlistRepo.FindActive(userID, itemID); err == nil && existing != nil {
		if err := s.wishlistRepo.Delete(existing.ID); err != nil {
			return nil, err
		}
		return &ToggleResult{Added: false, Message: "Item removed from the wishlist"}, nil
	}

	product, err := s.productRepo.FindByID(itemID)
	if err != nil {
		return nil, ErrItemNotFound
	}

	entry := &model.Wishlist{
		UserID:    userID,
		ItemID:    itemID,
		Quantity:  quantity,
		Price:     product.Price,
		Amount:    product.Price.Mul(decimal.NewFromInt(int64(quantity))),
		Status:    model.StatusActive,
		AddedDate: time.Now(),
	}
	if err := s.wishlistRepo.Create(entry); err != nil {
		return nil, err
	}
	return &ToggleResult{Added: true, Message: "Item added to the wishlist"}, nil
}

func (s *wishlistService) List(userID uuid.UUID) ([]model.ListedItem, error) {
	entries, err := s.wishlistRepo.ListActive(userID)
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
			Date:     entry.AddedDate,
		}
		// Catalog fields are resolved live so edits show through; a removed
		// product still lists with its stored price.
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
