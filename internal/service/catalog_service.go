package service

import (
	"errors"

	"go-market-api/internal/model"
	"go-market-api/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrDuplicateName     = errors.New("name already exists")
	ErrRecordNotFound    = errors.New("record not found")
	ErrStateNotFound     = errors.New("state not found")
	ErrDuplicatePostcode = errors.New("postcode already exists")
)

// CatalogService covers the reference-data CRUD around the product catalog:
// categories, sub-categories, states, postcodes, units, filters and gift
// boxes. Removal is always a status flip, never a hard delete.
type CatalogService interface {
	CreateCategory(category *model.Category) error
	ListCategories(activeOnly bool) ([]model.Category, error)
	UpdateCategory(category *model.Category) error
	RemoveCategory(id uuid.UUID, removedBy string) error

	CreateSubCategory(subCategory *model.SubCategory) error
	ListSubCategories() ([]model.SubCategory, error)
	SubCategoriesByCategory(categoryID uuid.UUID) ([]model.SubCategory, error)
	UpdateSubCategory(subCategory *model.SubCategory) error
	RemoveSubCategory(id uuid.UUID, removedBy string) error

	CreateState(state *model.State) error
	ListStates(activeOnly bool) ([]model.State, error)
	UpdateState(state *model.State) error
	RemoveState(id uuid.UUID, removedBy string) error

	CreatePostcode(postcode *model.Postcode) error
	ListPostcodes() ([]model.Postcode, error)
	PostcodesByState(stateID uuid.UUID) ([]model.Postcode, error)
	LookupPostcode(code string) (*model.Postcode, error)
	UpdatePostcode(postcode *model.Postcode) error
	RemovePostcode(id uuid.UUID, removedBy string) error

	CreateUnit(unit *model.Unit) error
	ListUnits() ([]model.Unit, error)
	UpdateUnit(unit *model.Unit) error
	RemoveUnit(id uuid.UUID, removedBy string) error

	CreateFilter(filter *model.Filter) error
	ListFilters() ([]model.Filter, error)
	UpdateFilter(filter *model.Filter) error
	RemoveFilter(id uuid.UUID, removedBy string) error

	CreateGiftBox(box *model.GiftBox) error
	ListGiftBoxes(activeOnly bool) ([]model.GiftBox, error)
	GetGiftBox(id uuid.UUID) (*model.GiftBox, error)
	UpdateGiftBox(box *model.GiftBox) error
	RemoveGiftBox(id uuid.UUID, removedBy string) error
}

type catalogService struct {
	categoryRepo    repository.CategoryRepository
	subCategoryRepo repository.SubCategoryRepository
	stateRepo       repository.StateRepository
	postcodeRepo    repository.PostcodeRepository
	unitRepo        repository.UnitRepository
	filterRepo      repository.FilterRepository
	giftBoxRepo     repository.GiftBoxRepository
}

func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	subCategoryRepo repository.SubCategoryRepository,
	stateRepo repository.StateRepository,
	postcodeRepo repository.PostcodeRepository,
	unitRepo repository.UnitRepository,
	filterRepo repository.FilterRepository,
	giftBoxRepo repository.GiftBoxRepository,
) CatalogService {
	return &catalogService{
		categoryRepo:    categoryRepo,
		subCategoryRepo: subCategoryRepo,
		stateRepo:       stateRepo,
		postcodeRepo:    postcodeRepo,
		unitRepo:        unitRepo,
		filterRepo:      filterRepo,
		giftBoxRepo:     giftBoxRepo,
	}
}

// -- categories --

func (s *catalogService) CreateCategory(category *model.Category) error {
	if existing, err := s.categoryRepo.FindByName(category.CategoryName); err == nil && existing != nil {
		return ErrDuplicateName
	}
	return s.categoryRepo.Create(category)
}

func (s *catalogService) ListCategories(activeOnly bool) ([]model.Category, error) {
	if activeOnly {
		return s.categoryRepo.FindActive()
	}
	return s.categoryRepo.FindAll()
}

func (s *catalogService) UpdateCategory(category *model.Category) error {
	if _, err := s.categoryRepo.FindByID(category.ID); err != nil {
		return ErrRecordNotFound
	}
	return s.categoryRepo.Update(category)
}

func (s *catalogService) RemoveCategory(id uuid.UUID, removedBy string) error {
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		return ErrRecordNotFound
	}
	return s.categoryRepo.Remove(id, removedBy)
}

// -- sub-categories --

func (s *catalogService) CreateSubCategory(subCategory *model.SubCategory) error {
	exists, err := s.categoryRepo.ExistsActive(subCategory.CategoryID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrCategoryNotFound
	}
	return s.subCategoryRepo.Create(subCategory)
}

func (s *catalogService) ListSubCategories() ([]model.SubCategory, error) {
	return s.subCategoryRepo.FindAll()
}

func (s *catalogService) SubCategoriesByCategory(categoryID uuid.UUID) ([]model.SubCategory, error) {
	return s.subCategoryRepo.FindByCategory(categoryID)
}

func (s *catalogService) UpdateSubCategory(subCategory *model.SubCategory) error {
	if _, err := s.subCategoryRepo.FindByID(subCategory.ID); err != nil {
		return ErrRecordNotFound
	}
	return s.subCategoryRepo.Update(subCategory)
}

func (s *catalogService) RemoveSubCategory(id uuid.UUID, removedBy string) error {
	if _, err := s.subCategoryRepo.FindByID(id); err != nil {
		return ErrRecordNotFound
	}
	return s.subCategoryRepo.Remove(id, removedBy)
}

// -- states --

func (s *catalogService) CreateState(state *model.State) error {
	if existing, err := s.stateRepo.FindByName(state.StateName); err == nil && existing != nil {
		return ErrDuplicateName
	}
	return s.stateRepo.Create(state)
}

func (s *catalogService) ListStates(activeOnly bool) ([]model.State, error) {
	if activeOnly {
		return s.stateRepo.FindActive()
	}
	return s.stateRepo.FindAll()
}

func (s *catalogService) UpdateState(state *model.State) error {
	if _, err := s.stateRepo.FindByID(state.ID); err != nil {
		return ErrRecordNotFound
	}
	return s.stateRepo.Update(state)
}

func (s *catalogService) RemoveState(id uuid.UUID, removedBy string) error {
	if _, err := s.stateRepo.FindByID(id); err != nil {
		return ErrRecordNotFound
	}
	return s.stateRepo.Remove(id, removedBy)
}

// -- postcodes --

func (s *catalogService) CreatePostcode(postcode *model.Postcode) error {
	exists, err := s.stateRepo.ExistsActive(postcode.StateID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrStateNotFound
	}
	if taken, err := s.postcodeRepo.ExistsActive(postcode.PostCode); err == nil && taken {
		return ErrDuplicatePostcode
	}
	return s.postcodeRepo.Create(postcode)
}

func (s *catalogService) ListPostcodes() ([]model.Postcode, error) {
	return s.postcodeRepo.FindAll()
}

func (s *catalogService) PostcodesByState(stateID uuid.UUID) ([]model.Postcode, error) {
	return s.postcodeRepo.FindByState(stateID)
}

// LookupPostcode resolves a delivery postcode to its state. The storefront
// calls this before accepting a shipping address.
func (s *catalogService) LookupPostcode(code string) (*model.Postcode, error) {
	postcode, err := s.postcodeRepo.FindByCode(code)
	if err != nil {
		return nil, ErrRecordNotFound
	}
	return postcode, nil
}

func (s *catalogService) UpdatePostcode(postcode *model.Postcode) error {
	if _, err := s.postcodeRepo.FindByID(postcode.ID); err != nil {
		return ErrRecordNotFound
	}
	return s.postcodeRepo.Update(postcode)
}

func (s *catalogService) RemovePostcode(id uuid.UUID, removedBy string) error {
	if _, err := s.postcodeRepo.FindByID(id); err != nil {
		return ErrRecordNotFound
	}
	return s.postcodeRepo.Remove(id, removedBy)
}

// -- units --

func (s *catalogService) CreateUnit(unit *model.Unit) error {
	if existing, err := s.unitRepo.FindByName(unit.UnitName); err == nil && existing != nil {
		return ErrDuplicateName
	}
	return s.unitRepo.Create(unit)
}

func (s *catalogService) ListUnits() ([]model.Unit, error) {
	return s.unitRepo.FindAll()
}

func (s *catalogService) UpdateUnit(unit *model.Unit) error {
	if _, err := s.unitRepo.FindByID(unit.ID); err != nil {
		return ErrRecordNotFound
	}
	return s.unitRepo.Update(unit)
}

func (s *catalogService) RemoveUnit(id uuid.UUID, removedBy string) error {
	if _, err := s.unitRepo.FindByID(id); err != nil {
		return ErrRecordNotFound
	}
	return s.unitRepo.Remove(id, removedBy)
}

// -- filters --

func (s *catalogService) CreateFilter(filter *model.Filter) error {
	return s.filterRepo.Create(filter)
}

func (s *catalogService) ListFilters() ([]model.Filter, error) {
	return s.filterRepo.FindAll()
}

func (s *catalogService) UpdateFilter(filter *model.Filter) error {
	if _, err := s.filterRepo.FindByID(filter.ID); err != nil {
		return ErrRecordNotFound
	}
	return s.filterRepo.Update(filter)
}

func (s *catalogService) RemoveFilter(id uuid.UUID, removedBy string) error {
	if _, err := s.filterRepo.FindByID(id); err != nil {
		return ErrRecordNotFound
	}
	return s.filterRepo.Remove(id, removedBy)
}

// -- gift boxes --

func (s *catalogService) CreateGiftBox(box *model.GiftBox) error {
	return s.giftBoxRepo.Create(box)
}

func (s *catalogService) ListGiftBoxes(activeOnly bool) ([]model.GiftBox, error) {
	if activeOnly {
		return s.giftBoxRepo.FindActive()
	}
	return s.giftBoxRepo.FindAll()
}

func (s *catalogService) GetGiftBox(id uuid.UUID) (*model.GiftBox, error) {
	box, err := s.giftBoxRepo.FindByID(id)
	if err != nil {
		return nil, ErrRecordNotFound
	}
	return box, nil
}

func (s *catalogService) UpdateGiftBox(box *model.GiftBox) error {
	if _, err := s.giftBoxRepo.FindByID(box.ID); err != nil {
		return ErrRecordNotFound
	}
	return s.giftBoxRepo.Update(box)
}

func (s *catalogService) RemoveGiftBox(id uuid.UUID, removedBy string) error {
	if _, err := s.giftBoxRepo.FindByID(id); err != nil {
		return ErrRecordNotFound
	}
	return s.giftBoxRepo.Remove(id, removedBy)
}
