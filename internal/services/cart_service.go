package services

import (
	"context"
	"fmt"

	"storefront/internal/apperror"
	"storefront/internal/dto"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/shopspring/decimal"
)

// CartService handles business logic related to shopping carts. Every
// mutation keeps Cart.TotalPrice equal to the sum of its line totals.
type CartService struct {
	uow repositories.UnitOfWork
}

// NewCartService creates a new CartService.
func NewCartService(uow repositories.UnitOfWork) *CartService {
	return &CartService{uow: uow}
}

// AddProductToCart puts quantity units of a product into the caller's cart,
// creating the cart on first use. Stock is checked but not reserved.
func (s *CartService) AddProductToCart(ctx context.Context, email string, productID uint, quantity int) (*dto.CartResponse, error) {
	if quantity <= 0 {
		return nil, apperror.Business("quantity must be greater than zero")
	}

	var resp dto.CartResponse
	err := s.uow.Execute(ctx, func(store *repositories.Store) error {
		cart, err := getOrCreateCart(store, email)
		if err != nil {
			return err
		}
		product, err := store.Products.GetByID(productID)
		if err != nil {
			return err
		}

		existing, err := store.Carts.FindItem(cart.ID, productID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.Business("Product %s already exists in the cart", product.Name)
		}
		if err := checkStock(product, quantity); err != nil {
			return err
		}

		item := &models.CartItem{
			CartID:       cart.ID,
			ProductID:    product.ID,
			Quantity:     quantity,
			Discount:     product.Discount,
			ProductPrice: product.SpecialPrice,
		}
		if err := store.Carts.AddItem(item); err != nil {
			return err
		}
		cart.TotalPrice = cart.TotalPrice.Add(item.LineTotal())
		if err := store.Carts.Save(cart); err != nil {
			return err
		}

		resp, err = cartResponse(store, cart)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetCart returns the caller's cart.
func (s *CartService) GetCart(ctx context.Context, email string) (*dto.CartResponse, error) {
	store := s.uow.Store(ctx)
	cart, err := store.Carts.FindByUserEmail(email)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, apperror.NotFound("Cart", "email", email)
	}
	resp, err := cartResponse(store, cart)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListCarts returns every cart.
func (s *CartService) ListCarts(ctx context.Context) ([]dto.CartResponse, error) {
	carts, err := s.uow.Store(ctx).Carts.GetAll()
	if err != nil {
		return nil, err
	}
	if len(carts) == 0 {
		return nil, apperror.Business("no cart exists")
	}
	resp := make([]dto.CartResponse, 0, len(carts))
	for i := range carts {
		resp = append(resp, dto.NewCartResponse(&carts[i], carts[i].Items))
	}
	return resp, nil
}

// UpdateProductQuantity changes the quantity of a product in the caller's
// cart by delta. A line that reaches zero is removed.
func (s *CartService) UpdateProductQuantity(ctx context.Context, email string, productID uint, delta int) (*dto.CartResponse, error) {
	var resp dto.CartResponse
	err := s.uow.Execute(ctx, func(store *repositories.Store) error {
		cart, err := store.Carts.FindByUserEmail(email)
		if err != nil {
			return err
		}
		if cart == nil {
			return apperror.NotFound("Cart", "email", email)
		}
		product, err := store.Products.GetByID(productID)
		if err != nil {
			return err
		}
		item, err := store.Carts.FindItem(cart.ID, productID)
		if err != nil {
			return err
		}
		if item == nil {
			return apperror.Business("Product %s not available in the cart", product.Name)
		}

		newQuantity := item.Quantity + delta
		if newQuantity < 0 {
			return apperror.Business("the resulting quantity cannot be negative")
		}
		if delta > 0 {
			if err := checkStock(product, newQuantity); err != nil {
				return err
			}
		}

		oldLine := item.LineTotal()
		if newQuantity == 0 {
			if err := store.Carts.DeleteItem(cart.ID, productID); err != nil {
				return err
			}
			cart.TotalPrice = cart.TotalPrice.Sub(oldLine)
		} else {
			item.Quantity = newQuantity
			item.ProductPrice = product.SpecialPrice
			item.Discount = product.Discount
			if err := store.Carts.UpdateItem(item); err != nil {
				return err
			}
			cart.TotalPrice = cart.TotalPrice.Sub(oldLine).Add(item.LineTotal())
		}
		if err := store.Carts.Save(cart); err != nil {
			return err
		}

		resp, err = cartResponse(store, cart)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteProductFromCart removes a product line from a cart. Only admins may
// touch carts other than their own.
func (s *CartService) DeleteProductFromCart(ctx context.Context, caller Principal, cartID, productID uint) (string, error) {
	var productName string
	err := s.uow.Execute(ctx, func(store *repositories.Store) error {
		cart, err := store.Carts.GetByID(cartID)
		if err != nil {
			return err
		}
		if !caller.IsAdmin() && cart.UserID != caller.UserID {
			return apperror.ErrForbidden
		}
		item, err := store.Carts.FindItem(cartID, productID)
		if err != nil {
			return err
		}
		if item == nil {
			return apperror.NotFound("Product", "productId", productID)
		}
		productName = item.Product.Name
		return removeCartItem(store, cartID, productID)
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Product %s removed from the cart", productName), nil
}

func getOrCreateCart(store *repositories.Store, email string) (*models.Cart, error) {
	cart, err := store.Carts.FindByUserEmail(email)
	if err != nil || cart != nil {
		return cart, err
	}
	user, err := store.Users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	cart = &models.Cart{UserID: user.ID, TotalPrice: decimal.Zero}
	if err := store.Carts.Save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func checkStock(product *models.Product, quantity int) error {
	if product.Quantity == 0 {
		return apperror.Business("%s is not available", product.Name)
	}
	if product.Quantity < quantity {
		return apperror.Business("Please, make an order of the %s less than or equal to the quantity %d", product.Name, product.Quantity)
	}
	return nil
}

// repriceCartItem re-snapshots product's price on its line in a cart and
// moves the cart total by the difference.
func repriceCartItem(store *repositories.Store, cartID uint, product *models.Product) error {
	cart, err := store.Carts.GetByID(cartID)
	if err != nil {
		return err
	}
	item, err := store.Carts.FindItem(cartID, product.ID)
	if err != nil {
		return err
	}
	if item == nil {
		return apperror.NotFound("Product", "productId", product.ID)
	}

	oldLine := item.LineTotal()
	item.ProductPrice = product.SpecialPrice
	item.Discount = product.Discount
	if err := store.Carts.UpdateItem(item); err != nil {
		return err
	}
	cart.TotalPrice = cart.TotalPrice.Sub(oldLine).Add(item.LineTotal())
	return store.Carts.Save(cart)
}

// removeCartItem deletes a product's line from a cart and lowers the total
// by the line's snapshot value.
func removeCartItem(store *repositories.Store, cartID, productID uint) error {
	cart, err := store.Carts.GetByID(cartID)
	if err != nil {
		return err
	}
	item, err := store.Carts.FindItem(cartID, productID)
	if err != nil {
		return err
	}
	if item == nil {
		return apperror.NotFound("Product", "productId", productID)
	}
	if err := store.Carts.DeleteItem(cartID, productID); err != nil {
		return err
	}
	cart.TotalPrice = cart.TotalPrice.Sub(item.LineTotal())
	return store.Carts.Save(cart)
}

func cartResponse(store *repositories.Store, cart *models.Cart) (dto.CartResponse, error) {
	items, err := store.Carts.Items(cart.ID)
	if err != nil {
		return dto.CartResponse{}, err
	}
	return dto.NewCartResponse(cart, items), nil
}
