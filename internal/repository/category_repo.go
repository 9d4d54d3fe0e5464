package repository

import (
	"go-market-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(category *model.Category) error
	FindAll() ([]model.Category, error)
	FindActive() ([]model.Category, error)
	FindByID(id uuid.UUID) (*model.Category, error)
	FindByName(name string) (*model.Category, error)
	Update(category *model.Category) error
	Remove(id uuid.UUID, removedBy string) error
	ExistsActive(id uuid.UUID) (bool, error)
}

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db}
}

func (r *categoryRepo) Create(category *model.Category) error {
	return r.db.Create(category).Error
}

func (r *categoryRepo) FindAll() ([]model.Category, error) {
	var categories []model.Category
	err := r.db.Where("status <> ?", model.StatusRemoved).Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) FindActive() ([]model.Category, error) {
	var categories []model.Category
	err := r.db.Where("status = ?", model.StatusActive).Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) FindByID(id uuid.UUID) (*model.Category, error) {
	var category model.Category
	if err := r.db.First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) FindByName(name string) (*model.Category, error) {
	var category model.Category
	err := r.db.Where("category_name = ? AND status <> ?", name, model.StatusRemoved).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) Update(category *model.Category) error {
	return r.db.Save(category).Error
}

func (r *categoryRepo) Remove(id uuid.UUID, removedBy string) error {
	return r.db.Model(&model.Category{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     model.StatusRemoved,
		"updated_by": removedBy,
	}).Error
}

func (r *categoryRepo) ExistsActive(id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&model.Category{}).
		Where("id = ? AND status = ?", id, model.StatusActive).
		Count(&count).Error
	return count > 0, err
}

type SubCategoryRepository interface {
	Create(subCategory *model.SubCategory) error
	FindAll() ([]model.SubCategory, error)
	FindByCategory(categoryID uuid.UUID) ([]model.SubCategory, error)
	FindByID(id uuid.UUID) (*model.SubCategory, error)
	Update(subCategory *model.SubCategory) error
	Remove(id uuid.UUID, removedBy string) error
}

type subCategoryRepo struct {
	db *gorm.DB
}

func NewSubCategoryRepo(db *gorm.DB) SubCategoryRepository {
	return &subCategoryRepo{db}
}

func (r *subCategoryRepo) Create(subCategory *model.SubCategory) error {
	return r.db.Create(subCategory).Error
}

func (r *subCategoryRepo) FindAll() ([]model.SubCategory, error) {
	var subCategories []model.SubCategory
	err := r.db.Preload("Category").
		Where("status <> ?", model.StatusRemoved).
		Find(&subCategories).Error
	return subCategories, err
}

func (r *subCategoryRepo) FindByCategory(categoryID uuid.UUID) ([]model.SubCategory, error) {
	var subCategories []model.SubCategory
	err := r.db.Where("category_id = ? AND status = ?", categoryID, model.StatusActive).
		Find(&subCategories).Error
	return subCategories, err
}

func (r *subCategoryRepo) FindByID(id uuid.UUID) (*model.SubCategory, error) {
	var subCategory model.SubCategory
	if err := r.db.Preload("Category").First(&subCategory, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &subCategory, nil
}

func (r *subCategoryRepo) Update(subCategory *model.SubCategory) error {
	return r.db.Save(subCategory).Error
}

func (r *subCategoryRepo) Remove(id uuid.UUID, removedBy string) error {
	return r.db.Model(&model.SubCategory{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     model.StatusRemoved,
		"updated_by": removedBy,
	}).Error
}
