package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go-market-api/internal/gateway"
	"go-market-api/internal/model"
	"go-market-api/internal/repository"
	"go-market-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrOrderValidation    = errors.New("order validation failed")
	ErrItemUnavailable    = errors.New("order references an unknown or inactive item")
	ErrGatewayUnavailable = errors.New("payment session could not be established")
	ErrOrderNotFound      = errors.New("order not found")
)

// OrderLineInput is a client-submitted line item. Name, image and price are
// snapshotted onto the order exactly as given; only item existence is checked
// against the live catalog.
type OrderLineInput struct {
	ItemID    uuid.UUID       `json:"item_id" validate:"uuid_required"`
	ItemName  string          `json:"item_name" validate:"required"`
	ItemImage string          `json:"item_image"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	Price     decimal.Decimal `json:"price" validate:"required"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
}

type CreateOrderInput struct {
	FirstName        string           `json:"first_name" validate:"required"`
	LastName         string           `json:"last_name" validate:"required"`
	Email            string           `json:"email_id" validate:"required,email"`
	PhoneNumber      string           `json:"phone_number" validate:"required"`
	AlternatePhone   string           `json:"alternate_phone"`
	Items            []OrderLineInput `json:"items" validate:"required,min=1,dive"`
	TotalAmount      decimal.Decimal  `json:"total_amount" validate:"required"`
	DeliveryCharges  decimal.Decimal  `json:"delivery_charges"`
	MailingAddress   model.Address    `json:"mailing_address"`
	ShippingAddress  model.Address    `json:"shipping_address"`
	StateDetails     string           `json:"state_details" validate:"required"`
	RedeemPointsUsed int64            `json:"redeempoints_used"`
}

// CreateOrderResult is returned to the caller so the client can follow the
// hosted-payment redirect.
type CreateOrderResult struct {
	OrderRef    string    `json:"order_id"`
	OrderDate   time.Time `json:"order_date"`
	RedirectURL string    `json:"redirect_url,omitempty"`
}

type OrderService interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, in *CreateOrderInput) (*CreateOrderResult, error)
	OrdersByUser(userID uuid.UUID) ([]model.Order, error)
	AllOrders() ([]model.Order, error)
	OrdersByDate(from, to time.Time) ([]model.Order, error)
	UpdateStatus(orderUUID string, payment, orderCompleted int) error
	ValidationErrors(in *CreateOrderInput) []*validator.ErrorResponse
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	gw          gateway.PaymentGateway
	log         *logrus.Logger
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	gw gateway.PaymentGateway,
	log *logrus.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		gw:          gw,
		log:         log,
	}
}

func (s *orderService) ValidationErrors(in *CreateOrderInput) []*validator.ErrorResponse {
	return validator.ValidateStruct(in)
}

func (s *orderService) CreateOrder(ctx context.Context, userID uuid.UUID, in *CreateOrderInput) (*CreateOrderResult, error) {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return nil, fmt.Errorf("%w: field %s failed on %s", ErrOrderValidation, errs[0].FailedField, errs[0].Tag)
	}

	// Catalog lookup validates identity only; counts never come from here.
	for _, item := range in.Items {
		exists, err := s.productRepo.ExistsActive(item.ItemID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("%w: %s", ErrItemUnavailable, item.ItemID)
		}
	}

	orderUUID := uuid.NewString()
	orderDate := time.Now()

	order := &model.Order{
		OrderUUID:        orderUUID,
		UserID:           userID,
		OrderDate:        orderDate,
		Status:           model.StatusActive,
		TotalAmount:      in.TotalAmount,
		DeliveryCharges:  in.DeliveryCharges,
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		Email:            in.Email,
		PhoneNumber:      in.PhoneNumber,
		AlternatePhone:   in.AlternatePhone,
		MailingAddress:   in.MailingAddress,
		ShippingAddress:  in.ShippingAddress,
		StateDetails:     in.StateDetails,
		RedeemPointsUsed: in.RedeemPointsUsed,
		Payment:          model.PaymentPending,
		OrderCompleted:   model.OrderOpen,
	}
	order.CreatedBy = userID.String()
	order.UpdatedBy = userID.String()

	for _, item := range in.Items {
		order.Items = append(order.Items, model.OrderItem{
			OrderUUID: orderUUID,
			ItemID:    item.ItemID,
			ItemName:  item.ItemName,
			ItemImage: item.ItemImage,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Amount:    item.Amount,
			Status:    model.StatusActive,
		})
	}

	// Inventory and loyalty are untouched here: the ledger only moves on
	// verified payment.
	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	session, err := s.gw.CreateSession(ctx, gateway.Customer{
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Street1:    in.MailingAddress.Address1,
		Street2:    in.MailingAddress.Address2,
		City:       in.MailingAddress.City,
		State:      in.MailingAddress.State,
		PostalCode: in.MailingAddress.Postcode,
		Country:    "au",
		Email:      in.Email,
		Phone:      in.PhoneNumber,
		Mobile:     in.PhoneNumber,
	}, gateway.Payment{
		TotalAmount:        in.TotalAmount.Mul(decimal.NewFromInt(100)).IntPart(),
		InvoiceNumber:      orderUUID,
		InvoiceDescription: storeName() + " Purchase",
		CurrencyCode:       "AUD",
	})
	if err != nil {
		// The unpaid order row deliberately survives: a later confirmation
		// can still correlate it, and nothing downstream has moved yet.
		s.log.WithFields(logrus.Fields{
			"order_uuid": orderUUID,
			"error":      err.Error(),
		}).Error("payment session failed, order kept unpaid")
		return &CreateOrderResult{OrderRef: orderUUID, OrderDate: orderDate}, ErrGatewayUnavailable
	}

	return &CreateOrderResult{
		OrderRef:    orderUUID,
		OrderDate:   orderDate,
		RedirectURL: session.RedirectURL,
	}, nil
}

func (s *orderService) OrdersByUser(userID uuid.UUID) ([]model.Order, error) {
	return s.orderRepo.FindByUser(userID)
}

func (s *orderService) AllOrders() ([]model.Order, error) {
	return s.orderRepo.FindAll()
}

func (s *orderService) OrdersByDate(from, to time.Time) ([]model.Order, error) {
	// Inclusive day bounds, matching the reporting surface.
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	end := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 0, to.Location())
	return s.orderRepo.FindByDateRange(start, end)
}

func (s *orderService) UpdateStatus(orderUUID string, payment, orderCompleted int) error {
	if _, err := s.orderRepo.FindByUUID(orderUUID); err != nil {
		return ErrOrderNotFound
	}
	return s.orderRepo.UpdateStatus(orderUUID, payment, orderCompleted)
}

func storeName() string {
	if name := os.Getenv("STORE_NAME"); name != "" {
		return name
	}
	return "Market"
}
