package service_test

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/samber/lo"
)

var (
	_ port.CartRepository    = (*memStore)(nil)
	_ port.OrderRepository   = (*memStore)(nil)
	_ port.ProductRepository = (*memStore)(nil)
	_ port.UserRepository    = (*memStore)(nil)
	_ port.AddressRepository = (*memStore)(nil)
	_ port.SessionStore      = (*memSessions)(nil)
	_ port.FreightCalculator = (*freightStub)(nil)
)

// memStore keeps every aggregate in maps and mirrors the repository error contract.
type memStore struct {
	mu    sync.Mutex
	clock time.Time

	carts     map[uuid.UUID]domain.Cart
	products  map[uuid.UUID]domain.Product
	users     map[uuid.UUID]domain.User
	addresses map[uuid.UUID]domain.Address
	orders    map[uuid.UUID]domain.Order

	cartLoads int
	// sessionMisses makes the next lookups by session report not found.
	sessionMisses int
}

func newMemStore() *memStore {
	return &memStore{
		clock:     time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		carts:     make(map[uuid.UUID]domain.Cart),
		products:  make(map[uuid.UUID]domain.Product),
		users:     make(map[uuid.UUID]domain.User),
		addresses: make(map[uuid.UUID]domain.Address),
		orders:    make(map[uuid.UUID]domain.Order),
	}
}

// tick must be called with mu held.
func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Millisecond)
	return s.clock
}

func notFound(call string) error {
	return fmt.Errorf("%s: %w", call, repository.ErrNotFound)
}

func (s *memStore) GetCart(_ context.Context, cartID uuid.UUID) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cartLoads++

	cart, ok := s.carts[cartID]
	if !ok {
		return domain.Cart{}, notFound("GetCart")
	}
	cart.Items = slices.Clone(cart.Items)
	return cart, nil
}

func (s *memStore) GetCartBySession(_ context.Context, sessionToken string) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sessionMisses > 0 {
		s.sessionMisses--
		return domain.Cart{}, notFound("GetCartBySession")
	}

	for _, cart := range s.carts {
		if lo.FromPtr(cart.SessionToken) == sessionToken {
			cart.Items = slices.Clone(cart.Items)
			return cart, nil
		}
	}
	return domain.Cart{}, notFound("GetCartBySession")
}

func (s *memStore) CreateCart(_ context.Context, cart domain.Cart) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.carts {
		if cart.SessionToken != nil && lo.FromPtr(existing.SessionToken) == *cart.SessionToken {
			return uuid.Nil, fmt.Errorf("CreateCart: %w", repository.ErrDuplicate)
		}
	}

	cart.ID = uuid.New()
	cart.CreatedAt = s.tick()
	s.carts[cart.ID] = cart
	return cart.ID, nil
}

func (s *memStore) AddItem(_ context.Context, cartID uuid.UUID, item domain.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[cartID]
	if !ok {
		return notFound("AddItem")
	}
	if _, ok := s.products[item.ProductID]; !ok {
		return notFound("AddItem")
	}

	item.ID = uuid.New()
	item.CreatedAt = s.tick()
	item.State = domain.Active{}
	cart.Items = append(slices.Clone(cart.Items), item)
	s.carts[cartID] = cart
	return nil
}

func (s *memStore) RemoveItems(_ context.Context, cartID, productID uuid.UUID, limit int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[cartID]
	if !ok {
		return 0, notFound("RemoveItems")
	}

	items := slices.Clone(cart.Items)
	removed := 0
	at := s.tick()

	// newest first
	for i := len(items) - 1; i >= 0; i-- {
		if limit > 0 && removed == limit {
			break
		}
		if items[i].ProductID != productID || !items[i].IsActive() {
			continue
		}
		items[i].State = domain.Removed{At: at}
		removed++
	}

	cart.Items = items
	s.carts[cartID] = cart
	return removed, nil
}

func (s *memStore) updateCart(call string, cartID uuid.UUID, fn func(*domain.Cart)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[cartID]
	if !ok {
		return notFound(call)
	}
	fn(&cart)
	s.carts[cartID] = cart
	return nil
}

func (s *memStore) RebindSession(_ context.Context, oldToken, newToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, cart := range s.carts {
		if cart.SessionToken != nil && *cart.SessionToken == oldToken {
			cart.SessionToken = &newToken
			s.carts[id] = cart
			return nil
		}
	}
	return notFound("RebindSession")
}

func (s *memStore) SetUser(_ context.Context, cartID, userID uuid.UUID) error {
	return s.updateCart("SetUser", cartID, func(c *domain.Cart) {
		c.UserID = &userID
	})
}

func (s *memStore) SetDestination(_ context.Context, cartID uuid.UUID, postalCode string) error {
	return s.updateCart("SetDestination", cartID, func(c *domain.Cart) {
		c.PostalCode = postalCode
	})
}

func (s *memStore) SetAddress(_ context.Context, cartID, addressID uuid.UUID, postalCode string) error {
	return s.updateCart("SetAddress", cartID, func(c *domain.Cart) {
		c.AddressID = &addressID
		c.PostalCode = postalCode
	})
}

func (s *memStore) SetFreight(_ context.Context, cartID uuid.UUID, freight domain.Freight) error {
	return s.updateCart("SetFreight", cartID, func(c *domain.Cart) {
		c.Freight = freight
	})
}

func (s *memStore) GetProduct(_ context.Context, productID uuid.UUID) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[productID]
	if !ok {
		return domain.Product{}, notFound("GetProduct")
	}
	return product, nil
}

func (s *memStore) ListProducts(_ context.Context) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return lo.Values(s.products), nil
}

func (s *memStore) InsertProduct(_ context.Context, product domain.Product) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product.ID = uuid.New()
	product.CreatedAt = s.tick()
	product.UpdatedAt = product.CreatedAt
	s.products[product.ID] = product
	return product.ID, nil
}

func (s *memStore) UpdatePrice(_ context.Context, productID uuid.UUID, price domain.Money) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[productID]
	if !ok {
		return notFound("UpdatePrice")
	}
	product.Price = price
	product.UpdatedAt = s.tick()
	s.products[productID] = product
	return nil
}

func (s *memStore) GetUser(_ context.Context, userID uuid.UUID) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return domain.User{}, notFound("GetUser")
	}
	return user, nil
}

func (s *memStore) GetUserByEmail(_ context.Context, email string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return domain.User{}, notFound("GetUserByEmail")
}

func (s *memStore) InsertUser(_ context.Context, user domain.User) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.ID = uuid.New()
	user.CreatedAt = s.tick()
	s.users[user.ID] = user
	return user.ID, nil
}

func (s *memStore) GetAddress(_ context.Context, addressID uuid.UUID) (domain.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	address, ok := s.addresses[addressID]
	if !ok {
		return domain.Address{}, notFound("GetAddress")
	}
	return address, nil
}

func (s *memStore) GetDefaultAddress(_ context.Context, userID uuid.UUID) (domain.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, address := range s.addresses {
		if address.UserID == userID && address.IsDefault {
			return address, nil
		}
	}
	return domain.Address{}, notFound("GetDefaultAddress")
}

func (s *memStore) ListAddresses(_ context.Context, userID uuid.UUID) ([]domain.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return lo.Filter(lo.Values(s.addresses), func(a domain.Address, _ int) bool {
		return a.UserID == userID
	}), nil
}

func (s *memStore) InsertAddress(_ context.Context, address domain.Address) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[address.UserID]; !ok {
		return uuid.Nil, notFound("InsertAddress")
	}

	address.ID = uuid.New()
	address.CreatedAt = s.tick()
	s.addresses[address.ID] = address
	return address.ID, nil
}

func (s *memStore) GetOrder(_ context.Context, orderID uuid.UUID) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return domain.Order{}, notFound("GetOrder")
	}
	return order, nil
}

func (s *memStore) GetOrderByCode(_ context.Context, code string) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, order := range s.orders {
		if order.Code == code {
			return order, nil
		}
	}
	return domain.Order{}, notFound("GetOrderByCode")
}

func (s *memStore) GetOrderByCart(_ context.Context, cartID uuid.UUID) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, order := range s.orders {
		if order.CartID == cartID {
			return order, nil
		}
	}
	return domain.Order{}, notFound("GetOrderByCart")
}

func (s *memStore) SearchOrders(_ context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	match := func(ids []uuid.UUID, id uuid.UUID) bool {
		return len(ids) == 0 || slices.Contains(ids, id)
	}

	var result []domain.Order
	for _, order := range s.orders {
		if !match(filter.IDs, order.ID) || !match(filter.UserIDs, order.UserID) || !match(filter.CartIDs, order.CartID) {
			continue
		}
		if len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, order.Status) {
			continue
		}
		result = append(result, order)
	}
	return result, nil
}

func (s *memStore) InsertOrder(_ context.Context, order domain.Order) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.orders {
		if existing.CartID == order.CartID {
			return uuid.Nil, fmt.Errorf("InsertOrder: %w", repository.ErrCartAlreadyOrdered)
		}
	}

	cart, ok := s.carts[order.CartID]
	if !ok {
		return uuid.Nil, notFound("InsertOrder")
	}
	cart.SessionToken = nil
	s.carts[cart.ID] = cart

	order.ID = uuid.New()
	order.CreatedAt = s.tick()
	order.UpdatedAt = order.CreatedAt
	s.orders[order.ID] = order
	return order.ID, nil
}

func (s *memStore) UpdateOrderStatus(_ context.Context, orderID uuid.UUID, status domain.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return notFound("UpdateOrderStatus")
	}
	order.Status = status
	order.UpdatedAt = s.tick()
	s.orders[orderID] = order
	return nil
}

func (s *memStore) DeleteOrder(_ context.Context, orderID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[orderID]; !ok {
		return notFound("DeleteOrder")
	}
	delete(s.orders, orderID)
	return nil
}

// freightStub returns a fixed quote or error and records every request.
type freightStub struct {
	mu       sync.Mutex
	requests []domain.FreightRequest

	quote  domain.FreightQuote
	err    error
	panics bool
}

func (f *freightStub) Quote(_ context.Context, req domain.FreightRequest) (domain.FreightQuote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, req)

	if f.panics {
		panic("carrier client bug")
	}
	if f.err != nil {
		return domain.FreightQuote{}, f.err
	}
	return f.quote, nil
}

func (f *freightStub) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.requests)
}

func (f *freightStub) set(quote domain.FreightQuote, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.quote = quote
	f.err = err
}

var errSessionNotFound = errors.New("session not found")

type memSessions struct {
	mu       sync.Mutex
	sessions map[string]*uuid.UUID
}

func newMemSessions() *memSessions {
	return &memSessions{sessions: make(map[string]*uuid.UUID)}
}

func (m *memSessions) Start(_ context.Context) (domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	token := rand.Text()
	m.sessions[token] = nil
	return domain.Session{Token: token}, nil
}

func (m *memSessions) Load(_ context.Context, token string) (domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	userID, ok := m.sessions[token]
	if !ok {
		return domain.Session{}, errSessionNotFound
	}
	return domain.Session{Token: token, UserID: userID}, nil
}

func (m *memSessions) BindUser(_ context.Context, token string, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[token]; !ok {
		return errSessionNotFound
	}
	m.sessions[token] = &userID
	return nil
}

func (m *memSessions) Rotate(_ context.Context, token string) (domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	userID, ok := m.sessions[token]
	if !ok {
		return domain.Session{}, errSessionNotFound
	}
	delete(m.sessions, token)

	next := rand.Text()
	m.sessions[next] = userID
	return domain.Session{Token: next, UserID: userID}, nil
}

func (m *memSessions) End(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, token)
	return nil
}
