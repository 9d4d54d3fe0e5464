package service

import (
	"errors"
	"time"

	"go-market-api/internal/model"
	"go-market-api/internal/repository"
	"go-market-api/internal/ws"
	"go-market-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrProductValidation = errors.New("product validation failed")
	ErrCategoryNotFound  = errors.New("category not found")
)

type ProductService interface {
	CreateProduct(product *model.Product, actorID uuid.UUID) (*model.Product, error)
	ListProducts() ([]model.ProductWithStock, error)
	ListActiveProducts() ([]model.ProductWithStock, error)
	ListByCategory(categoryID uuid.UUID) ([]model.ProductWithStock, error)
	Search(stateID uuid.UUID, term string) ([]model.ProductWithStock, error)
	GetProduct(id uuid.UUID) (*model.ProductWithStock, error)
	UpdateProduct(product *model.Product) error
	RemoveProduct(id uuid.UUID, removedBy string) error
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	inventory    InventoryEngine
	db           TxRunner
	log          *logrus.Logger
}

func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	inventory InventoryEngine,
	db TxRunner,
	log *logrus.Logger,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		inventory:    inventory,
		db:           db,
		log:          log,
	}
}

// CreateProduct inserts the catalog row and, when an opening quantity was
// submitted, seeds the ledger with the initial PURCHASE movement in the same
// transaction. Availability is derived from the ledger from that point on.
func (s *productService) CreateProduct(product *model.Product, actorID uuid.UUID) (*model.Product, error) {
	if errs := validator.ValidateStruct(product); len(errs) > 0 {
		return nil, ErrProductValidation
	}

	exists, err := s.categoryRepo.ExistsActive(product.CategoryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCategoryNotFound
	}

	var openingEvent *ws.StockEvent
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.Create(tx, product); err != nil {
			return err
		}
		if product.ItemsAvailable > 0 {
			_, event, err := s.inventory.RecordMovement(tx, MovementInput{
				ItemID:          product.ID,
				Quantity:        product.ItemsAvailable,
				Kind:            model.MovementPurchase,
				UserID:          actorID,
				TransactionType: model.TransactionByCreate,
				Date:            time.Now(),
			})
			if err != nil {
				return err
			}
			openingEvent = event
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if openingEvent != nil {
		s.inventory.PublishEvents(*openingEvent)
	}

	s.log.WithFields(logrus.Fields{
		"item_id":   product.ID,
		"item_name": product.ItemName,
		"opening":   product.ItemsAvailable,
	}).Info("product created")

	return product, nil
}

func (s *productService) ListProducts() ([]model.ProductWithStock, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}
	return s.annotate(products)
}

func (s *productService) ListActiveProducts() ([]model.ProductWithStock, error) {
	products, err := s.productRepo.FindActive()
	if err != nil {
		return nil, err
	}
	return s.annotate(products)
}

func (s *productService) ListByCategory(categoryID uuid.UUID) ([]model.ProductWithStock, error) {
	products, err := s.productRepo.FindByCategory(categoryID)
	if err != nil {
		return nil, err
	}
	return s.annotate(products)
}

func (s *productService) Search(stateID uuid.UUID, term string) ([]model.ProductWithStock, error) {
	products, err := s.productRepo.Search(stateID, term)
	if err != nil {
		return nil, err
	}
	return s.annotate(products)
}

func (s *productService) GetProduct(id uuid.UUID) (*model.ProductWithStock, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrItemNotFound
	}
	summary, err := s.inventory.CurrentStock(id)
	if err != nil {
		return nil, err
	}
	return &model.ProductWithStock{
		Product:      *product,
		CurrentStock: summary.CurrentStock,
		Oversold:     summary.Oversold,
	}, nil
}

func (s *productService) UpdateProduct(product *model.Product) error {
	existing, err := s.productRepo.FindByID(product.ID)
	if err != nil {
		return ErrItemNotFound
	}
	// ItemsAvailable only seeds the opening ledger entry; edits must go
	// through stock adjustments instead.
	product.ItemsAvailable = existing.ItemsAvailable
	return s.productRepo.Update(product)
}

func (s *productService) RemoveProduct(id uuid.UUID, removedBy string) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		return ErrItemNotFound
	}
	return s.productRepo.Remove(id, removedBy)
}

// annotate resolves live net stock for a product page with one grouped query.
func (s *productService) annotate(products []model.Product) ([]model.ProductWithStock, error) {
	ids := make([]uuid.UUID, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	nets, err := s.inventory.BulkStockSnapshot(ids)
	if err != nil {
		return nil, err
	}

	out := make([]model.ProductWithStock, 0, len(products))
	for _, p := range products {
		net := nets[p.ID]
		out = append(out, model.ProductWithStock{
			Product:      p,
			CurrentStock: net,
			Oversold:     net < 0,
		})
	}
	return out, nil
}
