package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

type OrderRepository interface {
	GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
	GetOrderByCode(ctx context.Context, code string) (domain.Order, error)
	GetOrderByCart(ctx context.Context, cartID uuid.UUID) (domain.Order, error)

	SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)

	// InsertOrder stores the order and releases the session bound to its cart.
	InsertOrder(ctx context.Context, order domain.Order) (uuid.UUID, error)

	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) error

	DeleteOrder(ctx context.Context, orderID uuid.UUID) error
}
