package repository

import (
	"go-market-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WishlistRepository interface {
	FindActive(userID, itemID uuid.UUID) (*model.Wishlist, error)
	Create(entry *model.Wishlist) error
	Delete(id uuid.UUID) error
	ListActive(userID uuid.UUID) ([]model.Wishlist, error)
}

type wishlistRepo struct {
	db *gorm.DB
}

func NewWishlistRepo(db *gorm.DB) WishlistRepository {
	return &wishlistRepo{db}
}

func (r *wishlistRepo) FindActive(userID, itemID uuid.UUID) (*model.Wishlist, error) {
	var entry model.Wishlist
	err := r.db.Where("user_id = ? AND item_id = ? AND status = ?",
		userID, itemID, model.StatusActive).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *wishlistRepo) Create(entry *model.Wishlist) error {
	return r.db.Create(entry).Error
}

// Delete removes the row outright; a wishlist toggle leaves no tombstone.
func (r *wishlistRepo) Delete(id uuid.UUID) error {
	return r.db.Unscoped().Delete(&model.Wishlist{}, "id = ?", id).Error
}

func (r *wishlistRepo) ListActive(userID uuid.UUID) ([]model.Wishlist, error) {
	var entries []model.Wishlist
	err := r.db.Where("user_id = ? AND status = ?", userID, model.StatusActive).
		Order("added_date DESC").
		Find(&entries).Error
	return entries, err
}

type CheckoutRepository interface {
	FindByUserItem(userID, itemID uuid.UUID) (*model.CheckoutItem, error)
	Create(entry *model.CheckoutItem) error
	Update(entry *model.CheckoutItem) error
	Remove(id uuid.UUID) error
	RemoveAllForUser(userID uuid.UUID) error
	ListActive(userID uuid.UUID) ([]model.CheckoutItem, error)
}

type checkoutRepo struct {
	db *gorm.DB
}

func NewCheckoutRepo(db *gorm.DB) CheckoutRepository {
	return &checkoutRepo{db}
}

func (r *checkoutRepo) FindByUserItem(userID, itemID uuid.UUID) (*model.CheckoutItem, error) {
	var entry model.CheckoutItem
	err := r.db.Where("user_id = ? AND item_id = ?", userID, itemID).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *checkoutRepo) Create(entry *model.CheckoutItem) error {
	return r.db.Create(entry).Error
}

func (r *checkoutRepo) Update(entry *model.CheckoutItem) error {
	return r.db.Save(entry).Error
}

func (r *checkoutRepo) Remove(id uuid.UUID) error {
	return r.db.Model(&model.CheckoutItem{}).Where("id = ?", id).
		Update("status", model.StatusRemoved).Error
}

func (r *checkoutRepo) RemoveAllForUser(userID uuid.UUID) error {
	return r.db.Model(&model.CheckoutItem{}).Where("user_id = ?", userID).
		Update("status", model.StatusRemoved).Error
}

func (r *checkoutRepo) ListActive(userID uuid.UUID) ([]model.CheckoutItem, error) {
	var entries []model.CheckoutItem
	err := r.db.Where("user_id = ? AND status = ?", userID, model.StatusActive).
		Order("checkout_date DESC").
		Find(&entries).Error
	return entries, err
}
