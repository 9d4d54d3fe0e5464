package repository

import (
	"go-market-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GiftBoxRepository interface {
	Create(box *model.GiftBox) error
	FindAll() ([]model.GiftBox, error)
	FindActive() ([]model.GiftBox, error)
	FindByID(id uuid.UUID) (*model.GiftBox, error)
	Update(box *model.GiftBox) error
	Remove(id uuid.UUID, removedBy string) error
}

type giftBoxRepo struct {
	db *gorm.DB
}

func NewGiftBoxRepo(db *gorm.DB) GiftBoxRepository {
	return &giftBoxRepo{db}
}

func (r *giftBoxRepo) Create(box *model.GiftBox) error {
	return r.db.Create(box).Error
}

func (r *giftBoxRepo) FindAll() ([]model.GiftBox, error) {
	var boxes []model.GiftBox
	err := r.db.Preload("Items").Where("status <> ?", model.StatusRemoved).Find(&boxes).Error
	return boxes, err
}

func (r *giftBoxRepo) FindActive() ([]model.GiftBox, error) {
	var boxes []model.GiftBox
	err := r.db.Preload("Items").Where("status = ?", model.StatusActive).Find(&boxes).Error
	return boxes, err
}

func (r *giftBoxRepo) FindByID(id uuid.UUID) (*model.GiftBox, error) {
	var box model.GiftBox
	if err := r.db.Preload("Items").First(&box, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &box, nil
}

func (r *giftBoxRepo) Update(box *model.GiftBox) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(box).Error
}

func (r *giftBoxRepo) Remove(id uuid.UUID, removedBy string) error {
	return r.db.Model(&model.GiftBox{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     model.StatusRemoved,
		"updated_by": removedBy,
	}).Error
}
