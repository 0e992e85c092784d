package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

type ProductRepository interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	InsertProduct(ctx context.Context, product domain.Product) (uuid.UUID, error)
	UpdatePrice(ctx context.Context, productID uuid.UUID, price domain.Money) error
}

type UserRepository interface {
	GetUser(ctx context.Context, userID uuid.UUID) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	InsertUser(ctx context.Context, user domain.User) (uuid.UUID, error)
}

type AddressRepository interface {
	GetAddress(ctx context.Context, addressID uuid.UUID) (domain.Address, error)
	GetDefaultAddress(ctx context.Context, userID uuid.UUID) (domain.Address, error)
	ListAddresses(ctx context.Context, userID uuid.UUID) ([]domain.Address, error)
	InsertAddress(ctx context.Context, address domain.Address) (uuid.UUID, error)
}
