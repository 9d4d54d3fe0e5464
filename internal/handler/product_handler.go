package handler

import (
	"errors"

	"go-market-api/internal/model"
	"go-market-api/internal/service"
	"go-market-api/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(s service.ProductService) *ProductHandler {
	return &ProductHandler{service: s}
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	product.CreatedBy = currentUserName(c)

	created, err := h.service.CreateProduct(&product, currentUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductValidation):
			return response.BadRequest(c, "Product validation failed")
		case errors.Is(err, service.ErrCategoryNotFound):
			return response.NotFound(c, "Category not found")
		}
		return response.Error(c, "Product creation failed")
	}
	return response.Created(c, "Product created", created)
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.service.ListProducts()
	if err != nil {
		return response.Error(c, "Could not list products")
	}
	return response.SuccessWithData(c, "Products", products)
}

func (h *ProductHandler) ListActive(c *fiber.Ctx) error {
	products, err := h.service.ListActiveProducts()
	if err != nil {
		return response.Error(c, "Could not list products")
	}
	return response.SuccessWithData(c, "Products", products)
}

func (h *ProductHandler) ListByCategory(c *fiber.Ctx) error {
	categoryID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid category id")
	}
	products, err := h.service.ListByCategory(categoryID)
	if err != nil {
		return response.Error(c, "Could not list products")
	}
	return response.SuccessWithData(c, "Products", products)
}

func (h *ProductHandler) Search(c *fiber.Ctx) error {
	stateID, _ := uuid.Parse(c.Query("state_id"))
	term := c.Query("q")
	if term == "" {
		return response.BadRequest(c, "Search term is required")
	}
	products, err := h.service.Search(stateID, term)
	if err != nil {
		return response.Error(c, "Search failed")
	}
	return response.SuccessWithData(c, "Products", products)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid product id")
	}
	product, err := h.service.GetProduct(id)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			return response.NotFound(c, "Product not found")
		}
		return response.Error(c, "Could not load product")
	}
	return response.SuccessWithData(c, "Product", product)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid product id")
	}
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	product.ID = id
	product.UpdatedBy = currentUserName(c)

	if err := h.service.UpdateProduct(&product); err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			return response.NotFound(c, "Product not found")
		}
		return response.Error(c, "Product update failed")
	}
	return response.SuccessWithData(c, "Product updated", product)
}

func (h *ProductHandler) Remove(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid product id")
	}
	if err := h.service.RemoveProduct(id, currentUserName(c)); err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			return response.NotFound(c, "Product not found")
		}
		return response.Error(c, "Product removal failed")
	}
	return response.Success(c, "Product removed")
}
