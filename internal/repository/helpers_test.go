package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/migrations"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"golang.org/x/text/currency"
)

// startPostgres runs a disposable postgres and applies the schema migrations.
func startPostgres(ctx context.Context) (testcontainers.Container, string, error) {
	container, err := postgres.Run(ctx,
		"postgres:17-alpine",
		postgres.WithDatabase("storefront"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, "", fmt.Errorf("container.ConnectionString: %w", err)
	}

	if err := migrations.Up(connStr); err != nil {
		return container, "", fmt.Errorf("migrations.Up: %w", err)
	}

	return container, connStr, nil
}

type fixture struct {
	user    domain.User
	address domain.Address
	product domain.Product
}

// insertFixture stores a user with a default address and a product to put in carts.
func insertFixture(t *testing.T, pool *pgxpool.Pool) fixture {
	t.Helper()
	ctx := t.Context()

	user := fakeUser()
	userID, err := repository.NewUser(pool).InsertUser(ctx, user)
	require.NoError(t, err)
	user.ID = userID

	address := fakeAddress(userID)
	addressID, err := repository.NewAddress(pool).InsertAddress(ctx, address)
	require.NoError(t, err)
	address.ID = addressID

	product := fakeProduct()
	productID, err := repository.NewProduct(pool).InsertProduct(ctx, product)
	require.NoError(t, err)
	product.ID = productID

	return fixture{user: user, address: address, product: product}
}

func fakeUser() domain.User {
	return domain.User{
		Name:         gofakeit.Name(),
		Email:        gofakeit.Email(),
		PasswordHash: gofakeit.Password(true, true, true, false, false, 60),
		TaxID:        lo.ToPtr("52998224725"),
	}
}

func fakeAddress(userID uuid.UUID) domain.Address {
	return domain.Address{
		UserID:     userID,
		Street:     gofakeit.Street(),
		Number:     gofakeit.StreetNumber(),
		District:   gofakeit.StreetName(),
		City:       gofakeit.City(),
		State:      gofakeit.StateAbr(),
		Country:    "Brasil",
		PostalCode: gofakeit.Numerify("########"),
		IsDefault:  true,
	}
}

func fakeProduct() domain.Product {
	return domain.Product{
		Name:  gofakeit.ProductName(),
		Price: fakeMoney(),
		Dimensions: domain.Dimensions{
			Width:  decimal.NewFromInt(int64(gofakeit.IntRange(5, 40))),
			Height: decimal.NewFromInt(int64(gofakeit.IntRange(1, 30))),
			Length: decimal.NewFromInt(int64(gofakeit.IntRange(10, 60))),
			Weight: decimal.RequireFromString("0.350"),
		},
		URL: gofakeit.URL(),
	}
}

func fakeMoney() domain.Money {
	return domain.Money{
		Amount:   decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2),
		Currency: currency.BRL,
	}
}

var compareOpts = cmp.Options{
	cmp.Comparer(func(x, y currency.Unit) bool {
		return x.String() == y.String()
	}),
	cmp.Comparer(func(x, y decimal.Decimal) bool {
		return x.Equal(y)
	}),
	cmpopts.IgnoreFields(domain.CartItem{}, "ID", "CreatedAt", "State"),
	cmpopts.EquateEmpty(),
}

func assertCart(t *testing.T, expected domain.Cart, actual domain.Cart) {
	t.Helper()

	diff := cmp.Diff(expected, actual, compareOpts, cmpopts.IgnoreFields(domain.Cart{}, "CreatedAt"))
	assert.Empty(t, diff)
}

func assertOrder(t *testing.T, expected domain.Order, actual domain.Order) {
	t.Helper()

	diff := cmp.Diff(expected, actual, compareOpts, cmpopts.IgnoreFields(domain.Order{}, "CreatedAt", "UpdatedAt"))
	assert.Empty(t, diff)
}
