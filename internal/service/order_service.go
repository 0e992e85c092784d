package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/apperr"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/identitymap"
	"github.com/nikolayk812/storefront/internal/logger"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/rs/zerolog"
)

type OrderServiceParams struct {
	Orders    port.OrderRepository
	Carts     port.CartRepository
	Users     port.UserRepository
	Addresses port.AddressRepository
	Logger    *logger.Logger

	GraceDays int
	// Clock defaults to time.Now.
	Clock func() time.Time
}

type OrderService struct {
	orders    port.OrderRepository
	carts     port.CartRepository
	users     port.UserRepository
	addresses port.AddressRepository
	log       *logger.Logger

	graceDays int
	now       func() time.Time
	newCode   func() string
}

func NewOrderService(p OrderServiceParams) (*OrderService, error) {
	if p.Orders == nil || p.Carts == nil || p.Users == nil || p.Addresses == nil {
		return nil, errors.New("order service: repositories are required")
	}
	if p.GraceDays < 0 {
		return nil, fmt.Errorf("order service: grace days is negative: %d", p.GraceDays)
	}

	log := p.Logger
	if log == nil {
		log = logger.Nop()
	}

	now := p.Clock
	if now == nil {
		now = time.Now
	}

	return &OrderService{
		orders:    p.Orders,
		carts:     p.Carts,
		users:     p.Users,
		addresses: p.Addresses,
		log:       log,
		graceDays: p.GraceDays,
		now:       now,
		newCode:   rand.Text,
	}, nil
}

type CreateOrderInput struct {
	CartID     uuid.UUID
	UserID     uuid.UUID
	AddressID  uuid.UUID
	Annotation *string
}

// Create freezes the cart into an order and releases the cart's session.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (domain.Order, error) {
	cart, err := identitymap.Load(ctx, identitymap.KindCart, in.CartID, func(ctx context.Context) (domain.Cart, error) {
		return s.carts.GetCart(ctx, in.CartID)
	})
	if err != nil {
		return domain.Order{}, missingAsValidation(err, "cart does not exist")
	}

	_, err = s.orders.GetOrderByCart(ctx, cart.ID)
	switch {
	case err == nil:
		return domain.Order{}, validation(ErrCartFinalized)
	case !errors.Is(err, repository.ErrNotFound):
		return domain.Order{}, apperr.Wrap(apperr.CodeInternal, err, "checking cart order failed")
	}

	user, err := identitymap.Load(ctx, identitymap.KindUser, in.UserID, func(ctx context.Context) (domain.User, error) {
		return s.users.GetUser(ctx, in.UserID)
	})
	if err != nil {
		return domain.Order{}, missingAsValidation(err, "user does not exist")
	}
	if !user.HasVerifiedTaxID() {
		return domain.Order{}, validation(ErrTaxIDMissing)
	}

	address, err := identitymap.Load(ctx, identitymap.KindAddress, in.AddressID, func(ctx context.Context) (domain.Address, error) {
		return s.addresses.GetAddress(ctx, in.AddressID)
	})
	if err != nil {
		return domain.Order{}, missingAsValidation(err, "address does not exist")
	}
	if address.UserID != user.ID {
		return domain.Order{}, validation(ErrAddressNotOwned)
	}

	if cart.IsEmpty() {
		return domain.Order{}, validation(ErrEmptyCart)
	}

	order := domain.Order{
		CartID:     cart.ID,
		UserID:     user.ID,
		AddressID:  address.ID,
		Status:     domain.OrderStatusOpen,
		Total:      cart.Total(),
		Code:       s.newCode(),
		Annotation: in.Annotation,
		Items:      cart.ActiveItems(),
	}

	orderID, err := s.orders.InsertOrder(ctx, order)
	if errors.Is(err, repository.ErrCartAlreadyOrdered) {
		return domain.Order{}, validation(ErrCartFinalized)
	}
	if err != nil {
		return domain.Order{}, apperr.Wrap(apperr.CodeInternal, err, "creating order failed")
	}
	identitymap.Forget(ctx, identitymap.KindCart, cart.ID)

	ctx = s.log.WithFields(ctx, map[string]any{
		"order_id": orderID.String(),
		"cart_id":  cart.ID.String(),
		"user_id":  user.ID.String(),
	})
	s.log.Info(ctx, "order created")

	return s.Get(ctx, orderID)
}

// AdvanceStatus moves the order to any known status.
func (s *OrderService) AdvanceStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) (domain.Order, error) {
	if !status.Known() {
		return domain.Order{}, validation(fmt.Errorf("%w: %s", domain.ErrUnknownOrderStatus, status))
	}

	if err := s.orders.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return domain.Order{}, missingAsNotFound(err, "order does not exist")
	}
	identitymap.Forget(ctx, identitymap.KindOrder, orderID)

	s.log.Event(s.log.WithField(ctx, "order_id", orderID.String()), zerolog.InfoLevel).
		Str("status", status.String()).
		Msg("order status changed")

	return s.Get(ctx, orderID)
}

// Delete removes the order unconditionally.
func (s *OrderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	if err := s.orders.DeleteOrder(ctx, orderID); err != nil {
		return missingAsNotFound(err, "order does not exist")
	}
	identitymap.Forget(ctx, identitymap.KindOrder, orderID)

	s.log.Info(s.log.WithField(ctx, "order_id", orderID.String()), "order deleted")

	return nil
}

func (s *OrderService) Get(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	order, err := identitymap.Load(ctx, identitymap.KindOrder, orderID, func(ctx context.Context) (domain.Order, error) {
		return s.orders.GetOrder(ctx, orderID)
	})
	if err != nil {
		return domain.Order{}, missingAsNotFound(err, "order does not exist")
	}
	return order, nil
}

func (s *OrderService) GetByCode(ctx context.Context, code string) (domain.Order, error) {
	if code == "" {
		return domain.Order{}, apperr.New(apperr.CodeValidation, "order code is empty")
	}

	order, err := s.orders.GetOrderByCode(ctx, code)
	if err != nil {
		return domain.Order{}, missingAsNotFound(err, "order does not exist")
	}
	return order, nil
}

func (s *OrderService) Search(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	if err := filter.Validate(); err != nil {
		return nil, validation(err)
	}

	orders, err := s.orders.SearchOrders(ctx, filter)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err, "searching orders failed")
	}
	return orders, nil
}

func (s *OrderService) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	return s.Search(ctx, domain.OrderFilter{UserIDs: []uuid.UUID{userID}})
}

func (s *OrderService) IsExpired(order domain.Order) bool {
	return order.IsExpired(s.now(), s.graceDays)
}

func (s *OrderService) ExpiresAt(order domain.Order) time.Time {
	return order.ExpiresAt(s.graceDays)
}
