package repository

import (
	"go-market-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StateRepository interface {
	Create(state *model.State) error
	FindAll() ([]model.State, error)
	FindActive() ([]model.State, error)
	FindByID(id uuid.UUID) (*model.State, error)
	FindByName(name string) (*model.State, error)
	Update(state *model.State) error
	Remove(id uuid.UUID, removedBy string) error
	ExistsActive(id uuid.UUID) (bool, error)
}

type stateRepo struct {
	db *gorm.DB
}

func NewStateRepo(db *gorm.DB) StateRepository {
	return &stateRepo{db}
}

func (r *stateRepo) Create(state *model.State) error {
	return r.db.Create(state).Error
}

func (r *stateRepo) FindAll() ([]model.State, error) {
	var states []model.State
	err := r.db.Where("status <> ?", model.StatusRemoved).Find(&states).Error
	return states, err
}

func (r *stateRepo) FindActive() ([]model.State, error) {
	var states []model.State
	err := r.db.Where("status = ?", model.StatusActive).Find(&states).Error
	return states, err
}

func (r *stateRepo) FindByID(id uuid.UUID) (*model.State, error) {
	var state model.State
	if err := r.db.First(&state, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &state, nil
}

func (r *stateRepo) FindByName(name string) (*model.State, error) {
	var state model.State
	err := r.db.Where("state_name = ? AND status <> ?", name, model.StatusRemoved).
		First(&state).Error
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (r *stateRepo) Update(state *model.State) error {
	return r.db.Save(state).Error
}

func (r *stateRepo) Remove(id uuid.UUID, removedBy string) error {
	return r.db.Model(&model.State{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     model.StatusRemoved,
		"updated_by": removedBy,
	}).Error
}

func (r *stateRepo) ExistsActive(id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&model.State{}).
		Where("id = ? AND status = ?", id, model.StatusActive).
		Count(&count).Error
	return count > 0, err
}

type PostcodeRepository interface {
	Create(postcode *model.Postcode) error
	FindAll() ([]model.Postcode, error)
	FindByState(stateID uuid.UUID) ([]model.Postcode, error)
	FindByCode(code string) (*model.Postcode, error)
	FindByID(id uuid.UUID) (*model.Postcode, error)
	Update(postcode *model.Postcode) error
	Remove(id uuid.UUID, removedBy string) error
	ExistsActive(code string) (bool, error)
}

type postcodeRepo struct {
	db *gorm.DB
}

func NewPostcodeRepo(db *gorm.DB) PostcodeRepository {
	return &postcodeRepo{db}
}

func (r *postcodeRepo) Create(postcode *model.Postcode) error {
	return r.db.Create(postcode).Error
}

func (r *postcodeRepo) FindAll() ([]model.Postcode, error) {
	var postcodes []model.Postcode
	err := r.db.Preload("State").Where("status <> ?", model.StatusRemoved).Find(&postcodes).Error
	return postcodes, err
}

func (r *postcodeRepo) FindByState(stateID uuid.UUID) ([]model.Postcode, error) {
	var postcodes []model.Postcode
	err := r.db.Where("state_id = ? AND status = ?", stateID, model.StatusActive).
		Find(&postcodes).Error
	return postcodes, err
}

func (r *postcodeRepo) FindByCode(code string) (*model.Postcode, error) {
	var postcode model.Postcode
	err := r.db.Preload("State").
		Where("post_code = ? AND status <> ?", code, model.StatusRemoved).
		First(&postcode).Error
	if err != nil {
		return nil, err
	}
	return &postcode, nil
}

func (r *postcodeRepo) FindByID(id uuid.UUID) (*model.Postcode, error) {
	var postcode model.Postcode
	if err := r.db.Preload("State").First(&postcode, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &postcode, nil
}

func (r *postcodeRepo) Update(postcode *model.Postcode) error {
	return r.db.Save(postcode).Error
}

func (r *postcodeRepo) Remove(id uuid.UUID, removedBy string) error {
	return r.db.Model(&model.Postcode{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     model.StatusRemoved,
		"updated_by": removedBy,
	}).Error
}

func (r *postcodeRepo) ExistsActive(code string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Postcode{}).
		Where("post_code = ? AND status = ?", code, model.StatusActive).
		Count(&count).Error
	return count > 0, err
}
