package httpapi_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/httpapi"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/nikolayk812/storefront/internal/service"
)

var (
	_ httpapi.CartService  = (*stubCarts)(nil)
	_ httpapi.OrderService = (*stubOrders)(nil)
	_ httpapi.AuthService  = (*stubAuth)(nil)
)

type removeCall struct {
	cartID    uuid.UUID
	productID uuid.UUID
	removeAll bool
}

type stubCarts struct {
	mu      sync.Mutex
	cart    domain.Cart
	err     error
	panics  bool
	removes []removeCall
	seen    []domain.Session
}

func (s *stubCarts) CurrentCart(_ context.Context, sess domain.Session) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.panics {
		panic("cart service bug")
	}
	s.seen = append(s.seen, sess)
	return s.cart, nil
}

func (s *stubCarts) AddItem(_ context.Context, _, _ uuid.UUID) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cart, s.err
}

func (s *stubCarts) RemoveItem(_ context.Context, cartID, productID uuid.UUID, removeAll bool) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removes = append(s.removes, removeCall{cartID: cartID, productID: productID, removeAll: removeAll})
	return s.cart, s.err
}

func (s *stubCarts) SetDestination(_ context.Context, _ uuid.UUID, postalCode string) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cart
	cart.PostalCode = postalCode
	return cart, s.err
}

func (s *stubCarts) SetAddress(_ context.Context, _, addressID uuid.UUID) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cart
	cart.AddressID = &addressID
	return cart, s.err
}

type stubOrders struct {
	mu      sync.Mutex
	orders  map[uuid.UUID]domain.Order
	created []service.CreateOrderInput
	err     error
}

func newStubOrders() *stubOrders {
	return &stubOrders{orders: make(map[uuid.UUID]domain.Order)}
}

func (s *stubOrders) Create(_ context.Context, in service.CreateOrderInput) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return domain.Order{}, s.err
	}

	s.created = append(s.created, in)
	order := domain.Order{
		ID:         uuid.New(),
		CartID:     in.CartID,
		UserID:     in.UserID,
		AddressID:  in.AddressID,
		Status:     domain.OrderStatusOpen,
		Code:       "CODE",
		Annotation: in.Annotation,
		CreatedAt:  time.Now(),
	}
	s.orders[order.ID] = order
	return order, nil
}

func (s *stubOrders) Get(_ context.Context, orderID uuid.UUID) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return domain.Order{}, notFound()
	}
	return order, nil
}

func (s *stubOrders) ListForUser(_ context.Context, userID uuid.UUID) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []domain.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			result = append(result, o)
		}
	}
	return result, nil
}

func (s *stubOrders) AdvanceStatus(_ context.Context, orderID uuid.UUID, status domain.OrderStatus) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return domain.Order{}, notFound()
	}
	order.Status = status
	s.orders[orderID] = order
	return order, nil
}

func (s *stubOrders) Delete(_ context.Context, orderID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[orderID]; !ok {
		return notFound()
	}
	delete(s.orders, orderID)
	return nil
}

func (s *stubOrders) IsExpired(order domain.Order) bool {
	return time.Now().After(s.ExpiresAt(order))
}

func (s *stubOrders) ExpiresAt(order domain.Order) time.Time {
	return order.ExpiresAt(10)
}

type stubAuth struct {
	err  error
	user domain.User
	next domain.Session
}

func (s *stubAuth) Login(_ context.Context, _, _, _ string) (domain.Session, domain.User, error) {
	return s.next, s.user, s.err
}

func (s *stubAuth) Logout(_ context.Context, _ string) (domain.Session, error) {
	return s.next, s.err
}

type stubUsers struct {
	users map[uuid.UUID]domain.User
}

func (s *stubUsers) GetUser(_ context.Context, userID uuid.UUID) (domain.User, error) {
	user, ok := s.users[userID]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	return user, nil
}

func (s *stubUsers) GetUserByEmail(_ context.Context, _ string) (domain.User, error) {
	return domain.User{}, repository.ErrNotFound
}

func (s *stubUsers) InsertUser(_ context.Context, _ domain.User) (uuid.UUID, error) {
	return uuid.Nil, nil
}
