package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go-market-api/internal/gateway"
	"go-market-api/internal/model"
	"go-market-api/internal/notify"
	"go-market-api/internal/repository"
	"go-market-api/internal/ws"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrPaymentFailed = errors.New("payment failed")

// Receipt echoes the gateway verdict back to the caller. It is identical on
// first confirmation and on replay.
type Receipt struct {
	TransactionID     int64            `json:"TransactionID"`
	TransactionStatus bool             `json:"TransactionStatus"`
	AuthorisationCode string           `json:"AuthorisationCode"`
	ResponseCode      string           `json:"ResponseCode"`
	ResponseMessage   string           `json:"ResponseMessage"`
	InvoiceNumber     string           `json:"InvoiceNumber"`
	InvoiceReference  string           `json:"InvoiceReference"`
	TotalAmount       int64            `json:"TotalAmount"`
	Customer          gateway.Customer `json:"Customer"`
}

// FulfillmentService drives the CREATED -> PAID transition. The transition
// is idempotent: ledger and loyalty effects apply at most once per order, and
// a replayed confirmation returns the same receipt with no side effects.
type FulfillmentService interface {
	VerifyToken(ctx context.Context, accessCode string) (*Receipt, error)
}

type fulfillmentService struct {
	gw        gateway.PaymentGateway
	orderRepo repository.OrderRepository
	inventory InventoryEngine
	loyalty   LoyaltyLedger
	userRepo  repository.UserRepository
	mail      notify.EmailSender
	sms       notify.SMSSender
	db        TxRunner
	log       *logrus.Logger
}

func NewFulfillmentService(
	gw gateway.PaymentGateway,
	orderRepo repository.OrderRepository,
	inventory InventoryEngine,
	loyalty LoyaltyLedger,
	userRepo repository.UserRepository,
	mail notify.EmailSender,
	sms notify.SMSSender,
	db TxRunner,
	log *logrus.Logger,
) FulfillmentService {
	return &fulfillmentService{
		gw:        gw,
		orderRepo: orderRepo,
		inventory: inventory,
		loyalty:   loyalty,
		userRepo:  userRepo,
		mail:      mail,
		sms:       sms,
		db:        db,
		log:       log,
	}
}

// earnThreshold is the minimum order total that accrues loyalty points.
var earnThreshold = decimal.NewFromInt(100)

// earnedPoints implements the accrual rule: ceil(total / 100) once the
// threshold is met, zero below it.
func earnedPoints(total decimal.Decimal) int64 {
	if total.LessThan(earnThreshold) {
		return 0
	}
	return total.Div(earnThreshold).Ceil().IntPart()
}

func (s *fulfillmentService) VerifyToken(ctx context.Context, accessCode string) (*Receipt, error) {
	txn, err := s.gw.QueryTransaction(ctx, accessCode)
	if err != nil {
		s.log.WithField("error", err.Error()).Error("gateway transaction query failed")
		return nil, ErrPaymentFailed
	}
	if !txn.TransactionStatus {
		s.log.WithFields(logrus.Fields{
			"invoice":  txn.InvoiceNumber,
			"response": txn.ResponseMessage,
		}).Warn("gateway reported unsuccessful transaction")
		return nil, fmt.Errorf("%w: %s", ErrPaymentFailed, txn.ResponseMessage)
	}

	// The echoed invoice number is the public order reference.
	order, err := s.orderRepo.FindByUUID(txn.InvoiceNumber)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	receipt := &Receipt{
		TransactionID:     txn.TransactionID,
		TransactionStatus: txn.TransactionStatus,
		AuthorisationCode: txn.AuthorisationCode,
		ResponseCode:      txn.ResponseCode,
		ResponseMessage:   txn.ResponseMessage,
		InvoiceNumber:     txn.InvoiceNumber,
		InvoiceReference:  txn.InvoiceReference,
		TotalAmount:       txn.TotalAmount,
		Customer:          txn.Customer,
	}

	applied := false
	var stockEvents []ws.StockEvent
	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Conditional transition doubles as the cross-process concurrency
		// guard: only one confirmation wins the UPDATE ... WHERE payment=0.
		won, err := s.orderRepo.MarkPaid(tx, order.OrderUUID, repository.PaidReceipt{
			TransactionID:   fmt.Sprintf("%d", txn.TransactionID),
			AuthCode:        txn.AuthorisationCode,
			ResponseCode:    txn.ResponseCode,
			ResponseMessage: txn.ResponseMessage,
		}, time.Now())
		if err != nil {
			return err
		}
		if !won {
			return nil
		}
		applied = true

		for _, item := range order.Items {
			_, event, err := s.inventory.RecordMovement(tx, MovementInput{
				ItemID:          item.ItemID,
				Quantity:        item.Quantity,
				Kind:            model.MovementSale,
				UserID:          order.UserID,
				OrderRef:        order.OrderUUID,
				TransactionType: model.TransactionByOrder,
				Date:            order.OrderDate,
			})
			if err != nil {
				return err
			}
			if event != nil {
				stockEvents = append(stockEvents, *event)
			}
		}

		if points := earnedPoints(order.TotalAmount); points > 0 {
			if err := s.loyalty.RecordEarn(tx, order.UserID, order.OrderUUID, order.TotalAmount, points, order.OrderDate); err != nil {
				return err
			}
		}
		if order.RedeemPointsUsed > 0 {
			if err := s.loyalty.RecordUse(tx, order.UserID, order.OrderUUID, order.TotalAmount, order.RedeemPointsUsed, order.OrderDate); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// Whole transition rolled back; the order is still CREATED and a
		// retry can re-apply cleanly.
		s.log.WithFields(logrus.Fields{
			"order_uuid": order.OrderUUID,
			"error":      err.Error(),
		}).Error("payment confirmation rolled back")
		return nil, fmt.Errorf("payment confirmation failed: %w", err)
	}

	if applied {
		// Broadcast only once the ledger writes are committed.
		s.inventory.PublishEvents(stockEvents...)
		s.notifyCustomer(order, txn)
	}

	return receipt, nil
}

// notifyCustomer sends the confirmation email and SMS. Failures are logged,
// never returned: notification must not fail a recorded payment.
func (s *fulfillmentService) notifyCustomer(order *model.Order, txn *gateway.Transaction) {
	customerName := order.FirstName + " " + order.LastName
	if user, err := s.userRepo.FindByID(order.UserID); err == nil && user.FirstName != "" {
		customerName = user.FullName()
	}

	items := make([]notify.OrderEmailItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, notify.OrderEmailItem{
			ItemName: item.ItemName,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	html, err := notify.BuildOrderConfirmation(notify.OrderEmailData{
		CustomerName: customerName,
		OrderRef:     order.OrderUUID,
		OrderDate:    order.OrderDate,
		TotalAmount:  order.TotalAmount,
		Items:        items,
		StoreName:    storeName(),
		StoreURL:     os.Getenv("STORE_URL"),
	})
	if err != nil {
		s.log.WithField("order_uuid", order.OrderUUID).Error("failed to render confirmation email")
		return
	}

	if err := s.mail.SendEmail("", order.Email, "Your Order on "+storeName(), html); err != nil {
		s.log.WithFields(logrus.Fields{
			"order_uuid": order.OrderUUID,
			"error":      err.Error(),
		}).Error("confirmation email failed")
	}

	if phone := txn.Customer.Phone; phone != "" {
		body := fmt.Sprintf(
			"Your order with reference to order Id: %s has been placed successfully on %s \n -%s Team",
			order.OrderUUID, time.Now().Format("02/01/2006 15:04"), storeName(),
		)
		if err := s.sms.SendSMS(phone, body); err != nil {
			s.log.WithFields(logrus.Fields{
				"order_uuid": order.OrderUUID,
				"error":      err.Error(),
			}).Error("confirmation sms failed")
		}
	}
}
