package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"storefront/internal/apperror"
	"storefront/internal/dto"
	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Guards are the route middlewares handlers attach to protected routes.
type Guards struct {
	// Auth requires any authenticated caller.
	Auth fiber.Handler
	// Admin requires the admin role.
	Admin fiber.Handler
	// Seller requires the seller or admin role.
	Seller fiber.Handler
}

var validate = validator.New()

// bind parses the request body into out and validates it.
func bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(out); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return err
		}
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return &apperror.ValidationError{Fields: errorMessages}
	}
	return nil
}

// paramID reads a positive numeric route parameter.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("invalid %s", name))
	}
	return uint(id), nil
}

// pageRequest reads pageNumber, pageSize, sortBy and sortOrder.
func pageRequest(c *fiber.Ctx) (dto.PageRequest, error) {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return page, fiber.NewError(fiber.StatusBadRequest, "invalid paging parameters")
	}
	return page, nil
}

// caller returns the authenticated user of a guarded route.
func caller(c *fiber.Ctx) (services.Principal, error) {
	principal, ok := middleware.CurrentUser(c)
	if !ok {
		return services.Principal{}, apperror.ErrInvalidCredentials
	}
	return principal, nil
}
