package handler

import (
	"errors"

	"go-market-api/internal/model"
	"go-market-api/internal/service"
	"go-market-api/pkg/response"
	"go-market-api/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	service service.CatalogService
}

func NewCategoryHandler(s service.CatalogService) *CategoryHandler {
	return &CategoryHandler{service: s}
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var category model.Category
	if err := c.BodyParser(&category); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validator.ValidateStruct(category); len(errs) > 0 {
		return response.ValidationError(c, "Validation failed", errs)
	}
	category.CreatedBy = currentUserName(c)

	if err := h.service.CreateCategory(&category); err != nil {
		if errors.Is(err, service.ErrDuplicateName) {
			return response.Conflict(c, "Category name already exists")
		}
		return response.Error(c, "Category creation failed")
	}
	return response.Created(c, "Category created", category)
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories(c.QueryBool("active", false))
	if err != nil {
		return response.Error(c, "Could not list categories")
	}
	return response.SuccessWithData(c, "Categories", categories)
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid category id")
	}
	var category model.Category
	if err := c.BodyParser(&category); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	category.ID = id
	category.UpdatedBy = currentUserName(c)

	if err := h.service.UpdateCategory(&category); err != nil {
		if errors.Is(err, service.ErrRecordNotFound) {
			return response.NotFound(c, "Category not found")
		}
		return response.Error(c, "Category update failed")
	}
	return response.SuccessWithData(c, "Category updated", category)
}

func (h *CategoryHandler) Remove(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid category id")
	}
	if err := h.service.RemoveCategory(id, currentUserName(c)); err != nil {
		if errors.Is(err, service.ErrRecordNotFound) {
			return response.NotFound(c, "Category not found")
		}
		return response.Error(c, "Category removal failed")
	}
	return response.Success(c, "Category removed")
}

func (h *CategoryHandler) CreateSub(c *fiber.Ctx) error {
	var subCategory model.SubCategory
	if err := c.BodyParser(&subCategory); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validator.ValidateStruct(subCategory); len(errs) > 0 {
		return response.ValidationError(c, "Validation failed", errs)
	}
	subCategory.CreatedBy = currentUserName(c)

	if err := h.service.CreateSubCategory(&subCategory); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			return response.NotFound(c, "Category not found")
		}
		return response.Error(c, "Sub-category creation failed")
	}
	return response.Created(c, "Sub-category created", subCategory)
}

func (h *CategoryHandler) ListSub(c *fiber.Ctx) error {
	subCategories, err := h.service.ListSubCategories()
	if err != nil {
		return response.Error(c, "Could not list sub-categories")
	}
	return response.SuccessWithData(c, "Sub-categories", subCategories)
}

func (h *CategoryHandler) ListSubByCategory(c *fiber.Ctx) error {
	categoryID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid category id")
	}
	subCategories, err := h.service.SubCategoriesByCategory(categoryID)
	if err != nil {
		return response.Error(c, "Could not list sub-categories")
	}
	return response.SuccessWithData(c, "Sub-categories", subCategories)
}

func (h *CategoryHandler) UpdateSub(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid sub-category id")
	}
	var subCategory model.SubCategory
	if err := c.BodyParser(&subCategory); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	subCategory.ID = id
	subCategory.UpdatedBy = currentUserName(c)

	if err := h.service.UpdateSubCategory(&subCategory); err != nil {
		if errors.Is(err, service.ErrRecordNotFound) {
			return response.NotFound(c, "Sub-category not found")
		}
		return response.Error(c, "Sub-category update failed")
	}
	return response.SuccessWithData(c, "Sub-category updated", subCategory)
}

func (h *CategoryHandler) RemoveSub(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid sub-category id")
	}
	if err := h.service.RemoveSubCategory(id, currentUserName(c)); err != nil {
		if errors.Is(err, service.ErrRecordNotFound) {
			return response.NotFound(c, "Sub-category not found")
		}
		return response.Error(c, "Sub-category removal failed")
	}
	return response.Success(c, "Sub-category removed")
}
