package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/apperr"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/identitymap"
	"github.com/nikolayk812/storefront/internal/logger"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/repository"
	"golang.org/x/text/currency"
)

type CartServiceParams struct {
	Carts     port.CartRepository
	Products  port.ProductRepository
	Addresses port.AddressRepository
	Orders    port.OrderRepository
	// Freight may be nil, carts then keep whatever freight they have.
	Freight port.FreightCalculator
	Logger  *logger.Logger

	Currency         currency.Unit
	OriginPostalCode string
	ServiceCode      string
}

type CartService struct {
	carts     port.CartRepository
	products  port.ProductRepository
	addresses port.AddressRepository
	orders    port.OrderRepository
	freight   port.FreightCalculator
	log       *logger.Logger

	currency    currency.Unit
	origin      string
	serviceCode string
}

func NewCartService(p CartServiceParams) (*CartService, error) {
	if p.Carts == nil || p.Products == nil || p.Addresses == nil || p.Orders == nil {
		return nil, errors.New("cart service: repositories are required")
	}
	if p.Currency == (currency.Unit{}) {
		return nil, errors.New("cart service: currency is required")
	}

	log := p.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &CartService{
		carts:       p.Carts,
		products:    p.Products,
		addresses:   p.Addresses,
		orders:      p.Orders,
		freight:     p.Freight,
		log:         log,
		currency:    p.Currency,
		origin:      p.OriginPostalCode,
		serviceCode: p.ServiceCode,
	}, nil
}

// CurrentCart returns the cart bound to the session, creating one on first access.
// A guest cart found for an authenticated session is attributed to the user.
func (s *CartService) CurrentCart(ctx context.Context, sess domain.Session) (domain.Cart, error) {
	if sess.Token == "" {
		return domain.Cart{}, apperr.New(apperr.CodeUnauthorized, "session is required")
	}

	cart, err := s.carts.GetCartBySession(ctx, sess.Token)
	switch {
	case err == nil:
		return s.attribute(ctx, cart, sess)
	case !errors.Is(err, repository.ErrNotFound):
		return domain.Cart{}, apperr.Wrap(apperr.CodeInternal, err, "loading session cart failed")
	}

	cartID, err := s.createSessionCart(ctx, sess)
	if errors.Is(err, repository.ErrDuplicate) {
		// another request created it first
		cart, err = s.carts.GetCartBySession(ctx, sess.Token)
		if err != nil {
			return domain.Cart{}, apperr.Wrap(apperr.CodeInternal, err, "loading session cart failed")
		}
		return s.attribute(ctx, cart, sess)
	}
	if err != nil {
		return domain.Cart{}, apperr.Wrap(apperr.CodeInternal, err, "creating cart failed")
	}

	return s.reload(ctx, cartID)
}

func (s *CartService) createSessionCart(ctx context.Context, sess domain.Session) (uuid.UUID, error) {
	token := sess.Token
	cart := domain.Cart{
		SessionToken: &token,
		Currency:     s.currency,
	}

	if sess.Authenticated() {
		cart.UserID = sess.UserID

		address, err := s.addresses.GetDefaultAddress(ctx, *sess.UserID)
		switch {
		case err == nil:
			cart.PostalCode = address.PostalCode
		case !errors.Is(err, repository.ErrNotFound):
			return uuid.Nil, fmt.Errorf("addresses.GetDefaultAddress: %w", err)
		}
	}

	cartID, err := s.carts.CreateCart(ctx, cart)
	if err != nil {
		return uuid.Nil, fmt.Errorf("carts.CreateCart: %w", err)
	}

	s.log.Info(s.log.WithCartID(ctx, cartID.String()), "cart created")

	return cartID, nil
}

func (s *CartService) attribute(ctx context.Context, cart domain.Cart, sess domain.Session) (domain.Cart, error) {
	if !sess.Authenticated() || cart.UserID != nil {
		return cart, nil
	}

	if err := s.carts.SetUser(ctx, cart.ID, *sess.UserID); err != nil {
		return domain.Cart{}, apperr.Wrap(apperr.CodeInternal, err, "attributing cart failed")
	}
	identitymap.Forget(ctx, identitymap.KindCart, cart.ID)

	cart.UserID = sess.UserID
	return cart, nil
}

func (s *CartService) GetCart(ctx context.Context, cartID uuid.UUID) (domain.Cart, error) {
	cart, err := s.loadCart(ctx, cartID)
	if err != nil {
		return domain.Cart{}, missingAsNotFound(err, "cart does not exist")
	}
	return cart, nil
}

// AddItem appends one unit of the product at its current price.
func (s *CartService) AddItem(ctx context.Context, cartID, productID uuid.UUID) (domain.Cart, error) {
	cart, err := s.mutableCart(ctx, cartID)
	if err != nil {
		return domain.Cart{}, err
	}

	product, err := identitymap.Load(ctx, identitymap.KindProduct, productID, func(ctx context.Context) (domain.Product, error) {
		return s.products.GetProduct(ctx, productID)
	})
	if err != nil {
		return domain.Cart{}, missingAsValidation(err, "product does not exist")
	}

	if product.Price.Currency != cart.Currency {
		return domain.Cart{}, validation(ErrCurrencyMismatch)
	}

	item := domain.CartItem{
		ProductID:  product.ID,
		Price:      product.Price,
		Dimensions: product.Dimensions,
		State:      domain.Active{},
	}

	if err := s.carts.AddItem(ctx, cart.ID, item); err != nil {
		return domain.Cart{}, missingAsValidation(err, "adding item failed")
	}

	return s.afterMutation(ctx, cart.ID)
}

// RemoveItem removes the newest active unit of the product, or all of them.
func (s *CartService) RemoveItem(ctx context.Context, cartID, productID uuid.UUID, removeAll bool) (domain.Cart, error) {
	cart, err := s.mutableCart(ctx, cartID)
	if err != nil {
		return domain.Cart{}, err
	}

	if cart.Quantity(productID) == 0 {
		return domain.Cart{}, validation(ErrProductNotInCart)
	}

	limit := 1
	if removeAll {
		limit = 0
	}

	if _, err := s.carts.RemoveItems(ctx, cart.ID, productID, limit); err != nil {
		return domain.Cart{}, apperr.Wrap(apperr.CodeInternal, err, "removing item failed")
	}

	return s.afterMutation(ctx, cart.ID)
}

// SetDestination rejects malformed postal codes before touching the cart.
func (s *CartService) SetDestination(ctx context.Context, cartID uuid.UUID, postalCode string) (domain.Cart, error) {
	normalized, err := domain.NormalizePostalCode(postalCode)
	if err != nil {
		return domain.Cart{}, validation(err)
	}

	cart, err := s.mutableCart(ctx, cartID)
	if err != nil {
		return domain.Cart{}, err
	}

	if err := s.carts.SetDestination(ctx, cart.ID, normalized); err != nil {
		return domain.Cart{}, apperr.Wrap(apperr.CodeInternal, err, "setting destination failed")
	}

	return s.afterMutation(ctx, cart.ID)
}

// SetAddress binds a delivery address of the cart's user and ships to its postal code.
func (s *CartService) SetAddress(ctx context.Context, cartID, addressID uuid.UUID) (domain.Cart, error) {
	cart, err := s.mutableCart(ctx, cartID)
	if err != nil {
		return domain.Cart{}, err
	}

	address, err := identitymap.Load(ctx, identitymap.KindAddress, addressID, func(ctx context.Context) (domain.Address, error) {
		return s.addresses.GetAddress(ctx, addressID)
	})
	if err != nil {
		return domain.Cart{}, missingAsValidation(err, "address does not exist")
	}

	if cart.UserID == nil || *cart.UserID != address.UserID {
		return domain.Cart{}, validation(ErrAddressNotOwned)
	}

	if err := s.carts.SetAddress(ctx, cart.ID, address.ID, address.PostalCode); err != nil {
		return domain.Cart{}, apperr.Wrap(apperr.CodeInternal, err, "setting address failed")
	}

	return s.afterMutation(ctx, cart.ID)
}

// mutableCart loads a cart that has not become an order yet.
func (s *CartService) mutableCart(ctx context.Context, cartID uuid.UUID) (domain.Cart, error) {
	cart, err := s.loadCart(ctx, cartID)
	if err != nil {
		return domain.Cart{}, missingAsValidation(err, "cart does not exist")
	}

	_, err = s.orders.GetOrderByCart(ctx, cartID)
	switch {
	case err == nil:
		return domain.Cart{}, validation(ErrCartFinalized)
	case !errors.Is(err, repository.ErrNotFound):
		return domain.Cart{}, apperr.Wrap(apperr.CodeInternal, err, "checking cart order failed")
	}

	return cart, nil
}

func (s *CartService) afterMutation(ctx context.Context, cartID uuid.UUID) (domain.Cart, error) {
	cart, err := s.reload(ctx, cartID)
	if err != nil {
		return domain.Cart{}, err
	}

	return s.refreshFreight(ctx, cart)
}

// refreshFreight quotes the cart when it has a destination and active items.
// Carrier failures keep the previous freight and are only logged.
// An emptied cart drops its freight.
func (s *CartService) refreshFreight(ctx context.Context, cart domain.Cart) (domain.Cart, error) {
	ctx = s.log.WithCartID(ctx, cart.ID.String())

	if cart.IsEmpty() {
		if cart.Freight.IsZero() {
			return cart, nil
		}
		return s.saveFreight(ctx, cart, domain.Freight{})
	}

	if s.freight == nil || !domain.IsPostalCode(cart.PostalCode) {
		return cart, nil
	}

	req := domain.NewFreightRequest(s.origin, cart.PostalCode, s.serviceCode, cart.Package())

	quote, err := s.quote(ctx, req)
	if err != nil {
		if errors.Is(err, domain.ErrNoQuote) {
			s.log.Warn(ctx, "freight not quoted, keeping previous freight", err)
		} else {
			s.log.Warn(ctx, "freight calculator failed, keeping previous freight", err)
		}
		return cart, nil
	}

	return s.saveFreight(ctx, cart, quote.Freight())
}

func (s *CartService) saveFreight(ctx context.Context, cart domain.Cart, freight domain.Freight) (domain.Cart, error) {
	if err := s.carts.SetFreight(ctx, cart.ID, freight); err != nil {
		return domain.Cart{}, apperr.Wrap(apperr.CodeInternal, err, "saving freight failed")
	}
	identitymap.Forget(ctx, identitymap.KindCart, cart.ID)

	cart.Freight = freight
	return cart, nil
}

// quote converts a panicking calculator into an error.
func (s *CartService) quote(ctx context.Context, req domain.FreightRequest) (quote domain.FreightQuote, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("freight calculator panic: %v", r)
		}
	}()

	return s.freight.Quote(ctx, req)
}

func (s *CartService) loadCart(ctx context.Context, cartID uuid.UUID) (domain.Cart, error) {
	return identitymap.Load(ctx, identitymap.KindCart, cartID, func(ctx context.Context) (domain.Cart, error) {
		return s.carts.GetCart(ctx, cartID)
	})
}

func (s *CartService) reload(ctx context.Context, cartID uuid.UUID) (domain.Cart, error) {
	identitymap.Forget(ctx, identitymap.KindCart, cartID)

	cart, err := s.loadCart(ctx, cartID)
	if err != nil {
		return domain.Cart{}, apperr.Wrap(apperr.CodeInternal, err, "reloading cart failed")
	}
	return cart, nil
}
