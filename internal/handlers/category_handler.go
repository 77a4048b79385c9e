package handlers

import (
	"storefront/internal/dto"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service *services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// RegisterRoutes registers the category routes.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router, guards Guards) {
	router.Get("/public/categories", h.HandleList)
	router.Post("/admin/categories", guards.Auth, guards.Admin, h.HandleCreate)
	router.Put("/admin/categories/:categoryId", guards.Auth, guards.Admin, h.HandleUpdate)
	router.Delete("/admin/categories/:categoryId", guards.Auth, guards.Admin, h.HandleDelete)
}

func (h *CategoryHandler) HandleList(c *fiber.Ctx) error {
	page, err := pageRequest(c)
	if err != nil {
		return err
	}
	categories, err := h.service.ListCategories(page)
	if err != nil {
		return err
	}
	return c.JSON(categories)
}

func (h *CategoryHandler) HandleCreate(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	category, err := h.service.CreateCategory(req.Name)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *CategoryHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := paramID(c, "categoryId")
	if err != nil {
		return err
	}
	var req dto.CategoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	category, err := h.service.UpdateCategory(id, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(category)
}

func (h *CategoryHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := paramID(c, "categoryId")
	if err != nil {
		return err
	}
	category, err := h.service.DeleteCategory(id)
	if err != nil {
		return err
	}
	return c.JSON(category)
}
