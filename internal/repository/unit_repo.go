package repository

import (
	"go-market-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UnitRepository interface {
	Create(unit *model.Unit) error
	FindAll() ([]model.Unit, error)
	FindByID(id uuid.UUID) (*model.Unit, error)
	FindByName(name string) (*model.Unit, error)
	Update(unit *model.Unit) error
	Remove(id uuid.UUID, removedBy string) error
}

type unitRepo struct {
	db *gorm.DB
}

func NewUnitRepo(db *gorm.DB) UnitRepository {
	return &unitRepo{db}
}

func (r *unitRepo) Create(unit *model.Unit) error {
	return r.db.Create(unit).Error
}

func (r *unitRepo) FindAll() ([]model.Unit, error) {
	var units []model.Unit
	err := r.db.Where("status <> ?", model.StatusRemoved).Find(&units).Error
	return units, err
}

func (r *unitRepo) FindByID(id uuid.UUID) (*model.Unit, error) {
	var unit model.Unit
	if err := r.db.First(&unit, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *unitRepo) FindByName(name string) (*model.Unit, error) {
	var unit model.Unit
	err := r.db.Where("unit_name = ? AND status <> ?", name, model.StatusRemoved).
		First(&unit).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *unitRepo) Update(unit *model.Unit) error {
	return r.db.Save(unit).Error
}

func (r *unitRepo) Remove(id uuid.UUID, removedBy string) error {
	return r.db.Model(&model.Unit{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     model.StatusRemoved,
		"updated_by": removedBy,
	}).Error
}

type FilterRepository interface {
	Create(filter *model.Filter) error
	FindAll() ([]model.Filter, error)
	FindByID(id uuid.UUID) (*model.Filter, error)
	Update(filter *model.Filter) error
	Remove(id uuid.UUID, removedBy string) error
}

type filterRepo struct {
	db *gorm.DB
}

func NewFilterRepo(db *gorm.DB) FilterRepository {
	return &filterRepo{db}
}

func (r *filterRepo) Create(filter *model.Filter) error {
	return r.db.Create(filter).Error
}

func (r *filterRepo) FindAll() ([]model.Filter, error) {
	var filters []model.Filter
	err := r.db.Where("status <> ?", model.StatusRemoved).Find(&filters).Error
	return filters, err
}

func (r *filterRepo) FindByID(id uuid.UUID) (*model.Filter, error) {
	var filter model.Filter
	if err := r.db.First(&filter, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &filter, nil
}

func (r *filterRepo) Update(filter *model.Filter) error {
	return r.db.Save(filter).Error
}

func (r *filterRepo) Remove(id uuid.UUID, removedBy string) error {
	return r.db.Model(&model.Filter{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     model.StatusRemoved,
		"updated_by": removedBy,
	}).Error
}
