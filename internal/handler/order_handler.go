package handler

import (
	"errors"
	"time"

	"go-market-api/internal/service"
	"go-market-api/pkg/response"
	"go-market-api/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	orders      service.OrderService
	fulfillment service.FulfillmentService
}

func NewOrderHandler(orders service.OrderService, fulfillment service.FulfillmentService) *OrderHandler {
	return &OrderHandler{orders: orders, fulfillment: fulfillment}
}

func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in service.CreateOrderInput
	if err := c.BodyParser(&in); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := h.orders.ValidationErrors(&in); len(errs) > 0 {
		return response.ValidationError(c, "Validation failed", errs)
	}

	result, err := h.orders.CreateOrder(c.UserContext(), currentUserID(c), &in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderValidation):
			return response.BadRequest(c, "Order validation failed")
		case errors.Is(err, service.ErrItemUnavailable):
			return response.BadRequest(c, "Order references an unknown or inactive item")
		case errors.Is(err, service.ErrGatewayUnavailable):
			// The order is persisted unpaid; the client can retry payment.
			return c.Status(fiber.StatusBadGateway).JSON(response.Envelope{
				Success: false,
				Message: "Payment session could not be established",
				Data:    result,
			})
		}
		return response.Error(c, "Order creation failed")
	}
	return response.Created(c, "Order created", result)
}

func (h *OrderHandler) MyOrders(c *fiber.Ctx) error {
	orders, err := h.orders.OrdersByUser(currentUserID(c))
	if err != nil {
		return response.Error(c, "Could not list orders")
	}
	return response.SuccessWithData(c, "Orders", orders)
}

func (h *OrderHandler) AllOrders(c *fiber.Ctx) error {
	orders, err := h.orders.AllOrders()
	if err != nil {
		return response.Error(c, "Could not list orders")
	}
	return response.SuccessWithData(c, "Orders", orders)
}

type dateFilterRequest struct {
	FromDate string `json:"from_date" validate:"required"`
	ToDate   string `json:"to_date" validate:"required"`
}

func (h *OrderHandler) FilterByDate(c *fiber.Ctx) error {
	var req dateFilterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return response.ValidationError(c, "Validation failed", errs)
	}

	from, err := time.Parse("2006-01-02", req.FromDate)
	if err != nil {
		return response.BadRequest(c, "from_date must be YYYY-MM-DD")
	}
	to, err := time.Parse("2006-01-02", req.ToDate)
	if err != nil {
		return response.BadRequest(c, "to_date must be YYYY-MM-DD")
	}

	orders, err := h.orders.OrdersByDate(from, to)
	if err != nil {
		return response.Error(c, "Could not filter orders")
	}
	return response.SuccessWithData(c, "Orders", orders)
}

type updateStatusRequest struct {
	OrderUUID      string `json:"order_uuid" validate:"required"`
	Payment        int    `json:"payment" validate:"oneof=0 1"`
	OrderCompleted int    `json:"order_completed" validate:"oneof=0 1"`
}

func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return response.ValidationError(c, "Validation failed", errs)
	}

	if err := h.orders.UpdateStatus(req.OrderUUID, req.Payment, req.OrderCompleted); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			return response.NotFound(c, "Order not found")
		}
		return response.Error(c, "Order status update failed")
	}
	return response.Success(c, "Order status updated")
}

type verifyTokenRequest struct {
	AccessCode string `json:"access_code" validate:"required"`
}

func (h *OrderHandler) VerifyToken(c *fiber.Ctx) error {
	var req verifyTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return response.ValidationError(c, "Validation failed", errs)
	}

	receipt, err := h.fulfillment.VerifyToken(c.UserContext(), req.AccessCode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentFailed):
			return response.BadRequest(c, "Payment was not successful")
		case errors.Is(err, service.ErrOrderNotFound):
			return response.NotFound(c, "Order not found")
		}
		return response.Error(c, "Payment verification failed")
	}
	return response.SuccessWithData(c, "Payment verified", receipt)
}
