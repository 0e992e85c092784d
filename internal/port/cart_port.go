package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

type CartRepository interface {
	GetCart(ctx context.Context, cartID uuid.UUID) (domain.Cart, error)
	GetCartBySession(ctx context.Context, sessionToken string) (domain.Cart, error)

	CreateCart(ctx context.Context, cart domain.Cart) (uuid.UUID, error)

	AddItem(ctx context.Context, cartID uuid.UUID, item domain.CartItem) error
	// RemoveItems marks active items of the product removed, newest first.
	// limit <= 0 removes all of them. Returns the number of items removed.
	RemoveItems(ctx context.Context, cartID, productID uuid.UUID, limit int) (int, error)

	// RebindSession moves the cart bound to oldToken over to newToken.
	RebindSession(ctx context.Context, oldToken, newToken string) error
	SetUser(ctx context.Context, cartID, userID uuid.UUID) error
	SetDestination(ctx context.Context, cartID uuid.UUID, postalCode string) error
	SetAddress(ctx context.Context, cartID, addressID uuid.UUID, postalCode string) error
	SetFreight(ctx context.Context, cartID uuid.UUID, freight domain.Freight) error
}
