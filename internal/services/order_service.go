package services

import (
	"context"
	"time"

	"storefront/internal/apperror"
	"storefront/internal/dto"
	"storefront/internal/metrics"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/pkg/rabbitmq"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// OrderEventPublisher announces committed orders to other services.
type OrderEventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event rabbitmq.OrderPlacedEvent) error
}

// OrderService handles business logic related to orders.
type OrderService struct {
	uow       repositories.UnitOfWork
	publisher OrderEventPublisher
	cache     *ProductCache
	now       func() time.Time
}

// NewOrderService creates a new OrderService. publisher and cache may be nil.
func NewOrderService(uow repositories.UnitOfWork, publisher OrderEventPublisher, cache *ProductCache) *OrderService {
	return &OrderService{
		uow:       uow,
		publisher: publisher,
		cache:     cache,
		now:       time.Now,
	}
}

// PlaceOrder turns the caller's cart into an order. Payment, order, order
// items, stock decrements and cart clearing commit together or not at all.
func (s *OrderService) PlaceOrder(ctx context.Context, req dto.PlaceOrderRequest) (*dto.OrderSummary, error) {
	var (
		order    *models.Order
		products map[uint]models.Product
	)
	err := s.uow.Execute(ctx, func(store *repositories.Store) error {
		cart, err := store.Carts.FindByUserEmail(req.Email)
		if err != nil {
			return err
		}
		if cart == nil {
			return apperror.Business("cart not found")
		}

		address, err := store.Addresses.GetByID(req.AddressID)
		if err != nil {
			return err
		}

		payment := &models.Payment{
			PaymentMethod:     req.PaymentMethod,
			PGName:            req.GatewayName,
			PGPaymentID:       req.GatewayPaymentID,
			PGStatus:          req.GatewayStatus,
			PGResponseMessage: req.GatewayResponseMessage,
		}
		if err := store.Payments.Create(payment); err != nil {
			return err
		}

		order = &models.Order{
			Email:       req.Email,
			OrderDate:   s.now(),
			TotalAmount: cart.TotalPrice,
			OrderStatus: models.OrderStatusAccepted,
			AddressID:   address.ID,
			PaymentID:   payment.ID,
			Payment:     payment,
		}
		if err := store.Orders.Create(order); err != nil {
			return err
		}

		cartItems, err := store.Carts.Items(cart.ID)
		if err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return apperror.Business("cart is empty")
		}

		orderItems := make([]models.OrderItem, 0, len(cartItems))
		products = make(map[uint]models.Product, len(cartItems))
		for _, item := range cartItems {
			orderItems = append(orderItems, models.OrderItem{
				OrderID:             order.ID,
				ProductID:           item.ProductID,
				ProductName:         item.Product.Name,
				Quantity:            item.Quantity,
				Discount:            item.Discount,
				OrderedProductPrice: item.ProductPrice,
			})
			products[item.ProductID] = item.Product
		}
		if err := store.Orders.CreateItems(orderItems); err != nil {
			return err
		}
		order.Items = orderItems

		for _, item := range cartItems {
			if err := store.Products.DecrementStock(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		for _, item := range cartItems {
			if err := store.Carts.DeleteItem(cart.ID, item.ProductID); err != nil {
				return err
			}
		}
		cart.TotalPrice = decimal.Zero
		return store.Carts.Save(cart)
	})
	metrics.RecordOrderOperation("place", err == nil)
	if err != nil {
		return nil, err
	}

	s.afterPlace(ctx, order)
	summary := dto.NewOrderSummary(order, products)
	return &summary, nil
}

// afterPlace runs the best-effort side effects of a committed order.
func (s *OrderService) afterPlace(ctx context.Context, order *models.Order) {
	ids := make([]uint, 0, len(order.Items))
	items := make([]rabbitmq.OrderPlacedItem, 0, len(order.Items))
	for _, item := range order.Items {
		ids = append(ids, item.ProductID)
		items = append(items, rabbitmq.OrderPlacedItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.OrderedProductPrice,
		})
	}
	s.cache.Invalidate(ctx, ids...)

	if s.publisher == nil {
		log.Debug().Uint("order_id", order.ID).Msg("no event publisher configured, skipping order event")
		return
	}
	event := rabbitmq.OrderPlacedEvent{
		OrderID:     order.ID,
		Email:       order.Email,
		TotalAmount: order.TotalAmount,
		Items:       items,
		PlacedAt:    order.OrderDate,
	}
	if err := s.publisher.PublishOrderPlaced(ctx, event); err != nil {
		log.Warn().Err(err).Uint("order_id", order.ID).Msg("failed to publish order placed event")
	}
}

// GetOrdersByEmail returns the caller's orders, newest first.
func (s *OrderService) GetOrdersByEmail(ctx context.Context, email string) ([]dto.OrderSummary, error) {
	store := s.uow.Store(ctx)
	orders, err := store.Orders.ListByEmail(email)
	if err != nil {
		return nil, err
	}
	products, err := productsForOrders(store, orders...)
	if err != nil {
		return nil, err
	}
	summaries := make([]dto.OrderSummary, 0, len(orders))
	for i := range orders {
		summaries = append(summaries, dto.NewOrderSummary(&orders[i], products))
	}
	return summaries, nil
}

// GetOrder returns one of the caller's orders. Orders of other users are
// reported as not found.
func (s *OrderService) GetOrder(ctx context.Context, email string, id uint) (*dto.OrderSummary, error) {
	store := s.uow.Store(ctx)
	order, err := store.Orders.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order.Email != email {
		return nil, apperror.NotFound("Order", "orderId", id)
	}
	products, err := productsForOrders(store, *order)
	if err != nil {
		return nil, err
	}
	summary := dto.NewOrderSummary(order, products)
	return &summary, nil
}

// UpdateOrderStatus moves an order to a new status and returns it.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uint, status string) (*dto.OrderSummary, error) {
	store := s.uow.Store(ctx)
	if err := store.Orders.UpdateStatus(id, status); err != nil {
		metrics.RecordOrderOperation("update_status", false)
		return nil, err
	}
	metrics.RecordOrderOperation("update_status", true)

	order, err := store.Orders.GetByID(id)
	if err != nil {
		return nil, err
	}
	products, err := productsForOrders(store, *order)
	if err != nil {
		return nil, err
	}
	summary := dto.NewOrderSummary(order, products)
	return &summary, nil
}

func productsForOrders(store *repositories.Store, orders ...models.Order) (map[uint]models.Product, error) {
	seen := make(map[uint]bool)
	var ids []uint
	for _, order := range orders {
		for _, item := range order.Items {
			if !seen[item.ProductID] {
				seen[item.ProductID] = true
				ids = append(ids, item.ProductID)
			}
		}
	}
	found, err := store.Products.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	products := make(map[uint]models.Product, len(found))
	for _, p := range found {
		products[p.ID] = p
	}
	return products, nil
}
