package service_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/apperr"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/service"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/text/currency"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const (
	origin      = "09853120"
	serviceCode = "04014"
	destination = "86047622"
)

type env struct {
	store   *memStore
	freight *freightStub
	carts   *service.CartService
	orders  *service.OrderService

	user    domain.User
	address domain.Address
}

func newEnv(t *testing.T) *env {
	t.Helper()

	e := &env{
		store: newMemStore(),
		freight: &freightStub{quote: domain.FreightQuote{
			Cost:         decimal.RequireFromString("5.00"),
			LeadTimeDays: 3,
			Method:       serviceCode,
		}},
	}

	var err error
	e.carts, err = service.NewCartService(service.CartServiceParams{
		Carts:            e.store,
		Products:         e.store,
		Addresses:        e.store,
		Orders:           e.store,
		Freight:          e.freight,
		Currency:         currency.BRL,
		OriginPostalCode: origin,
		ServiceCode:      serviceCode,
	})
	require.NoError(t, err)

	e.orders, err = service.NewOrderService(service.OrderServiceParams{
		Orders:    e.store,
		Carts:     e.store,
		Users:     e.store,
		Addresses: e.store,
		GraceDays: 10,
	})
	require.NoError(t, err)

	e.user = e.insertUser(t, lo.ToPtr("529.982.247-25"))
	e.address = e.insertAddress(t, e.user.ID, destination)

	return e
}

func (e *env) insertUser(t *testing.T, taxID *string) domain.User {
	t.Helper()

	user := domain.User{
		Name:         gofakeit.Name(),
		Email:        gofakeit.Email(),
		PasswordHash: "x",
		TaxID:        taxID,
	}

	id, err := e.store.InsertUser(t.Context(), user)
	require.NoError(t, err)
	user.ID = id

	return user
}

func (e *env) insertAddress(t *testing.T, userID uuid.UUID, postalCode string) domain.Address {
	t.Helper()

	address := domain.Address{
		UserID:     userID,
		Street:     gofakeit.Street(),
		City:       gofakeit.City(),
		PostalCode: postalCode,
		IsDefault:  true,
	}

	id, err := e.store.InsertAddress(t.Context(), address)
	require.NoError(t, err)
	address.ID = id

	return address
}

func (e *env) insertProduct(t *testing.T, price string) domain.Product {
	t.Helper()

	product := domain.Product{
		Name:  gofakeit.ProductName(),
		Price: brl(price),
		Dimensions: domain.Dimensions{
			Width:  decimal.NewFromInt(10),
			Height: decimal.NewFromInt(1),
			Length: decimal.NewFromInt(15),
			Weight: decimal.RequireFromString("0.3"),
		},
	}

	id, err := e.store.InsertProduct(t.Context(), product)
	require.NoError(t, err)
	product.ID = id

	return product
}

// guestCart creates the cart of a fresh anonymous session.
func (e *env) guestCart(t *testing.T) domain.Cart {
	t.Helper()

	cart, err := e.carts.CurrentCart(t.Context(), domain.Session{Token: gofakeit.UUID()})
	require.NoError(t, err)

	return cart
}

// userCart creates the cart of a fresh session authenticated as the env user.
func (e *env) userCart(t *testing.T) domain.Cart {
	t.Helper()

	cart, err := e.carts.CurrentCart(t.Context(), domain.Session{Token: gofakeit.UUID(), UserID: &e.user.ID})
	require.NoError(t, err)

	return cart
}

func brl(amount string) domain.Money {
	return domain.Money{Amount: decimal.RequireFromString(amount), Currency: currency.BRL}
}

func assertAmount(t *testing.T, expected string, actual domain.Money) {
	t.Helper()

	assert.True(t, decimal.RequireFromString(expected).Equal(actual.Amount), "expected %s, got %s", expected, actual.Amount)
}

// assertTotal checks that the total is the sum of active items plus freight.
func assertTotal(t *testing.T, cart domain.Cart) {
	t.Helper()

	sum := decimal.Zero
	if !cart.IsEmpty() {
		sum = cart.Freight.Cost
	}
	for _, item := range cart.ActiveItems() {
		sum = sum.Add(item.Price.Amount)
	}
	assert.True(t, sum.Equal(cart.Total().Amount), "total %s, want %s", cart.Total().Amount, sum)
}

func assertCode(t *testing.T, expected apperr.Code, err error) {
	t.Helper()

	require.Error(t, err)
	assert.Equal(t, expected, apperr.CodeOf(err), err.Error())
}
