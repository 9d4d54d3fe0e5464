package repository

import (
	"go-market-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(tx *gorm.DB, product *model.Product) error
	FindAll() ([]model.Product, error)
	FindActive() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByCategory(categoryID uuid.UUID) ([]model.Product, error)
	Search(stateID uuid.UUID, term string) ([]model.Product, error)
	Update(product *model.Product) error
	// Remove marks the row removed (status 3) instead of hard deleting so
	// ledger entries and order snapshots keep a valid reference.
	Remove(id uuid.UUID, removedBy string) error
	ExistsActive(id uuid.UUID) (bool, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *productRepo) Create(tx *gorm.DB, product *model.Product) error {
	return r.conn(tx).Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").Preload("SubCategory").Preload("Unit").
		Where("status <> ?", model.StatusRemoved).
		Find(&products).Error
	return products, err
}

func (r *productRepo) FindActive() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").Preload("SubCategory").Preload("Unit").
		Where("status = ?", model.StatusActive).
		Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Category").Preload("SubCategory").Preload("Unit").
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindByCategory(categoryID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Unit").
		Where("category_id = ? AND status = ?", categoryID, model.StatusActive).
		Find(&products).Error
	return products, err
}

func (r *productRepo) Search(stateID uuid.UUID, term string) ([]model.Product, error) {
	var products []model.Product
	query := r.db.Preload("Unit").Where("status = ?", model.StatusActive)
	if stateID != uuid.Nil {
		query = query.Where("state_id = ?", stateID)
	}
	if term != "" {
		query = query.Where("item_name ILIKE ?", "%"+term+"%")
	}
	err := query.Find(&products).Error
	return products, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Remove(id uuid.UUID, removedBy string) error {
	return r.db.Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     model.StatusRemoved,
			"updated_by": removedBy,
		}).Error
}

func (r *productRepo) ExistsActive(id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&model.Product{}).
		Where("id = ? AND status = ?", id, model.StatusActive).
		Count(&count).Error
	return count > 0, err
}
