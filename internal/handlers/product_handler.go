package handlers

import (
	"fmt"
	"time"

	"storefront/internal/dto"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// RegisterRoutes registers the product routes.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, guards Guards) {
	router.Get("/public/products", h.HandleList)
	router.Get("/public/products/keyword/:keyword", h.HandleSearch)
	router.Get("/public/products/:productId", h.HandleGet)
	router.Get("/public/categories/:categoryId/products", h.HandleListByCategory)

	router.Post("/admin/categories/:categoryId/product", guards.Auth, guards.Seller, h.HandleCreate)
	router.Get("/admin/products/export", guards.Auth, guards.Admin, h.HandleExport)
	router.Put("/admin/products/:productId", guards.Auth, guards.Seller, h.HandleUpdate)
	router.Delete("/admin/products/:productId", guards.Auth, guards.Seller, h.HandleDelete)
	router.Put("/products/:productId/image", guards.Auth, guards.Seller, h.HandleUpdateImage)
}

func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	page, err := pageRequest(c)
	if err != nil {
		return err
	}
	products, err := h.service.ListProducts(c.UserContext(), page)
	if err != nil {
		return err
	}
	return c.JSON(products)
}

func (h *ProductHandler) HandleListByCategory(c *fiber.Ctx) error {
	categoryID, err := paramID(c, "categoryId")
	if err != nil {
		return err
	}
	page, err := pageRequest(c)
	if err != nil {
		return err
	}
	products, err := h.service.ProductsByCategory(c.UserContext(), categoryID, page)
	if err != nil {
		return err
	}
	return c.JSON(products)
}

func (h *ProductHandler) HandleSearch(c *fiber.Ctx) error {
	page, err := pageRequest(c)
	if err != nil {
		return err
	}
	products, err := h.service.SearchProducts(c.UserContext(), c.Params("keyword"), page)
	if err != nil {
		return err
	}
	return c.JSON(products)
}

func (h *ProductHandler) HandleGet(c *fiber.Ctx) error {
	id, err := paramID(c, "productId")
	if err != nil {
		return err
	}
	product, err := h.service.GetProduct(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	categoryID, err := paramID(c, "categoryId")
	if err != nil {
		return err
	}
	var req dto.ProductRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	product, err := h.service.AddProduct(c.UserContext(), categoryID, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := paramID(c, "productId")
	if err != nil {
		return err
	}
	var req dto.ProductRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	product, err := h.service.UpdateProduct(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := paramID(c, "productId")
	if err != nil {
		return err
	}
	product, err := h.service.DeleteProduct(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

func (h *ProductHandler) HandleUpdateImage(c *fiber.Ctx) error {
	id, err := paramID(c, "productId")
	if err != nil {
		return err
	}
	file, err := c.FormFile("image")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "image file is required")
	}
	product, err := h.service.UpdateProductImage(c.UserContext(), id, file)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

func (h *ProductHandler) HandleExport(c *fiber.Ctx) error {
	data, err := h.service.ExportProducts(c.UserContext())
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="products-%s.xlsx"`, time.Now().Format("20060102")))
	return c.Send(data)
}
