package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/samber/lo"
	"golang.org/x/text/currency"
)

type cartRepository struct {
	q    *db.Queries
	dbtx db.DBTX
}

func NewCart(pool *pgxpool.Pool) port.CartRepository {
	return &cartRepository{
		q:    db.New(pool),
		dbtx: pool,
	}
}

func NewCartWithTx(tx pgx.Tx) port.CartRepository {
	return &cartRepository{
		q:    db.New(tx),
		dbtx: tx,
	}
}

func (r *cartRepository) GetCart(ctx context.Context, cartID uuid.UUID) (domain.Cart, error) {
	cart, err := withTx(ctx, r.dbtx, func(q *db.Queries) (domain.Cart, error) {
		dbCart, err := q.GetCart(ctx, cartID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.Cart{}, fmt.Errorf("q.GetCart: %w", ErrNotFound)
			}
			return domain.Cart{}, fmt.Errorf("q.GetCart: %w", err)
		}

		return loadCart(ctx, q, dbCart)
	})
	if err != nil {
		return domain.Cart{}, fmt.Errorf("withTx: %w", err)
	}

	return cart, nil
}

func (r *cartRepository) GetCartBySession(ctx context.Context, sessionToken string) (domain.Cart, error) {
	if sessionToken == "" {
		return domain.Cart{}, errors.New("sessionToken is empty")
	}

	cart, err := withTx(ctx, r.dbtx, func(q *db.Queries) (domain.Cart, error) {
		dbCart, err := q.GetCartBySession(ctx, &sessionToken)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.Cart{}, fmt.Errorf("q.GetCartBySession: %w", ErrNotFound)
			}
			return domain.Cart{}, fmt.Errorf("q.GetCartBySession: %w", err)
		}

		return loadCart(ctx, q, dbCart)
	})
	if err != nil {
		return domain.Cart{}, fmt.Errorf("withTx: %w", err)
	}

	return cart, nil
}

func (r *cartRepository) CreateCart(ctx context.Context, cart domain.Cart) (uuid.UUID, error) {
	if cart.Currency == (currency.Unit{}) {
		return uuid.Nil, errors.New("currency is empty")
	}

	cartID, err := r.q.CreateCart(ctx, db.CreateCartParams{
		SessionToken: cart.SessionToken,
		UserID:       cart.UserID,
		PostalCode:   cart.PostalCode,
		Currency:     cart.Currency.String(),
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("q.CreateCart: %w", mapPgError(err))
	}

	return cartID, nil
}

func (r *cartRepository) AddItem(ctx context.Context, cartID uuid.UUID, item domain.CartItem) error {
	arg := db.AddItemParams{
		CartID:        cartID,
		ProductID:     item.ProductID,
		PriceAmount:   item.Price.Amount,
		PriceCurrency: item.Price.Currency.String(),
	}

	if err := r.q.AddItem(ctx, arg); err != nil {
		return fmt.Errorf("q.AddItem: %w", mapPgError(err))
	}

	return nil
}

func (r *cartRepository) RemoveItems(ctx context.Context, cartID, productID uuid.UUID, limit int) (int, error) {
	if limit <= 0 {
		cmdTag, err := r.q.RemoveAllItems(ctx, db.RemoveAllItemsParams{
			CartID:    cartID,
			ProductID: productID,
		})
		if err != nil {
			return 0, fmt.Errorf("q.RemoveAllItems: %w", err)
		}
		return int(cmdTag.RowsAffected()), nil
	}

	cmdTag, err := r.q.RemoveNewestItems(ctx, db.RemoveNewestItemsParams{
		CartID:    cartID,
		ProductID: productID,
		Limit:     int32(limit),
	})
	if err != nil {
		return 0, fmt.Errorf("q.RemoveNewestItems: %w", err)
	}

	return int(cmdTag.RowsAffected()), nil
}

func (r *cartRepository) RebindSession(ctx context.Context, oldToken, newToken string) error {
	if oldToken == "" || newToken == "" {
		return errors.New("session token is empty")
	}

	cmdTag, err := r.q.RebindCartSession(ctx, db.RebindCartSessionParams{
		NewToken: &newToken,
		OldToken: &oldToken,
	})
	if err != nil {
		return fmt.Errorf("q.RebindCartSession: %w", mapPgError(err))
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("q.RebindCartSession: %w", ErrNotFound)
	}

	return nil
}

func (r *cartRepository) SetUser(ctx context.Context, cartID, userID uuid.UUID) error {
	cmdTag, err := r.q.SetCartUser(ctx, db.SetCartUserParams{
		ID:     cartID,
		UserID: lo.ToPtr(userID),
	})
	if err != nil {
		return fmt.Errorf("q.SetCartUser: %w", mapPgError(err))
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("q.SetCartUser: %w", ErrNotFound)
	}

	return nil
}

func (r *cartRepository) SetDestination(ctx context.Context, cartID uuid.UUID, postalCode string) error {
	cmdTag, err := r.q.SetCartDestination(ctx, db.SetCartDestinationParams{
		ID:         cartID,
		PostalCode: postalCode,
	})
	if err != nil {
		return fmt.Errorf("q.SetCartDestination: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("q.SetCartDestination: %w", ErrNotFound)
	}

	return nil
}

func (r *cartRepository) SetAddress(ctx context.Context, cartID, addressID uuid.UUID, postalCode string) error {
	cmdTag, err := r.q.SetCartAddress(ctx, db.SetCartAddressParams{
		ID:         cartID,
		AddressID:  lo.ToPtr(addressID),
		PostalCode: postalCode,
	})
	if err != nil {
		return fmt.Errorf("q.SetCartAddress: %w", mapPgError(err))
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("q.SetCartAddress: %w", ErrNotFound)
	}

	return nil
}

func (r *cartRepository) SetFreight(ctx context.Context, cartID uuid.UUID, freight domain.Freight) error {
	cmdTag, err := r.q.SetCartFreight(ctx, db.SetCartFreightParams{
		ID:              cartID,
		FreightCost:     freight.Cost,
		FreightMethod:   freight.Method,
		FreightLeadTime: int32(freight.LeadTimeDays),
	})
	if err != nil {
		return fmt.Errorf("q.SetCartFreight: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("q.SetCartFreight: %w", ErrNotFound)
	}

	return nil
}

func loadCart(ctx context.Context, q *db.Queries, dbCart db.Cart) (domain.Cart, error) {
	dbItems, err := q.GetCartItems(ctx, dbCart.ID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("q.GetCartItems: %w", err)
	}

	cart, err := mapDBCartToDomain(dbCart, dbItems)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("mapDBCartToDomain: %w", err)
	}

	return cart, nil
}

func mapDBCartToDomain(dbCart db.Cart, dbItems []db.GetCartItemsRow) (domain.Cart, error) {
	parsedCurrency, err := parseCurrency(dbCart.Currency)
	if err != nil {
		return domain.Cart{}, err
	}

	items, err := mapGetCartItemsRowsToDomain(dbItems)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("mapGetCartItemsRowsToDomain: %w", err)
	}

	return domain.Cart{
		ID:           dbCart.ID,
		SessionToken: dbCart.SessionToken,
		UserID:       dbCart.UserID,
		AddressID:    dbCart.AddressID,
		PostalCode:   strings.TrimSpace(dbCart.PostalCode),
		Currency:     parsedCurrency,
		Freight: domain.Freight{
			Cost:         dbCart.FreightCost,
			Method:       dbCart.FreightMethod,
			LeadTimeDays: int(dbCart.FreightLeadTime),
		},
		Items:     items,
		CreatedAt: dbCart.CreatedAt,
	}, nil
}

func mapGetCartItemsRowToDomain(row db.GetCartItemsRow) (domain.CartItem, error) {
	parsedCurrency, err := parseCurrency(row.PriceCurrency)
	if err != nil {
		return domain.CartItem{}, err
	}

	var state domain.LineState = domain.Active{}
	if row.RemovedAt != nil {
		state = domain.Removed{At: *row.RemovedAt}
	}

	return domain.CartItem{
		ID:        row.ID,
		ProductID: row.ProductID,
		Price:     domain.Money{Amount: row.PriceAmount, Currency: parsedCurrency},
		Dimensions: domain.Dimensions{
			Width:  row.Width,
			Height: row.Height,
			Length: row.Length,
			Weight: row.Weight,
		},
		State:     state,
		CreatedAt: row.CreatedAt,
	}, nil
}

func mapGetCartItemsRowsToDomain(rows []db.GetCartItemsRow) ([]domain.CartItem, error) {
	var items []domain.CartItem

	for _, row := range rows {
		item, err := mapGetCartItemsRowToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapGetCartItemsRowToDomain: %w", err)
		}

		items = append(items, item)
	}

	return items, nil
}

func parseCurrency(code string) (currency.Unit, error) {
	parsed, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		return currency.Unit{}, fmt.Errorf("currency[%s] is not valid: %w", code, err)
	}
	return parsed, nil
}
