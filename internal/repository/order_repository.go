package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/samber/lo"
)

type orderRepository struct {
	q    *db.Queries
	dbtx db.DBTX
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{
		q:    db.New(pool),
		dbtx: pool,
	}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{
		q:    db.New(tx),
		dbtx: tx,
	}
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	return r.getOrder(ctx, "q.GetOrder", func(q *db.Queries) (db.Order, error) {
		return q.GetOrder(ctx, orderID)
	})
}

func (r *orderRepository) GetOrderByCode(ctx context.Context, code string) (domain.Order, error) {
	if code == "" {
		return domain.Order{}, errors.New("code is empty")
	}

	return r.getOrder(ctx, "q.GetOrderByCode", func(q *db.Queries) (db.Order, error) {
		return q.GetOrderByCode(ctx, code)
	})
}

func (r *orderRepository) GetOrderByCart(ctx context.Context, cartID uuid.UUID) (domain.Order, error) {
	return r.getOrder(ctx, "q.GetOrderByCart", func(q *db.Queries) (db.Order, error) {
		return q.GetOrderByCart(ctx, cartID)
	})
}

func (r *orderRepository) getOrder(ctx context.Context, call string, get func(q *db.Queries) (db.Order, error)) (domain.Order, error) {
	order, err := withTx(ctx, r.dbtx, func(q *db.Queries) (domain.Order, error) {
		dbOrder, err := get(q)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.Order{}, fmt.Errorf("%s: %w", call, ErrNotFound)
			}
			return domain.Order{}, fmt.Errorf("%s: %w", call, err)
		}

		return loadOrder(ctx, q, dbOrder)
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("withTx: %w", err)
	}

	return order, nil
}

// InsertOrder stores the order and unbinds the session of its cart in one transaction.
func (r *orderRepository) InsertOrder(ctx context.Context, order domain.Order) (uuid.UUID, error) {
	if order.CartID == uuid.Nil {
		return uuid.Nil, errors.New("cartID is empty")
	}
	if order.Code == "" {
		return uuid.Nil, errors.New("code is empty")
	}

	orderID, err := withTx(ctx, r.dbtx, func(q *db.Queries) (uuid.UUID, error) {
		orderID, err := q.InsertOrder(ctx, db.InsertOrderParams{
			CartID:        order.CartID,
			UserID:        order.UserID,
			AddressID:     order.AddressID,
			TotalAmount:   order.Total.Amount,
			TotalCurrency: order.Total.Currency.String(),
			Code:          order.Code,
			Annotation:    order.Annotation,
		})
		if err != nil {
			return uuid.Nil, fmt.Errorf("q.InsertOrder: %w", mapPgError(err))
		}

		if _, err := q.UnbindCartSession(ctx, order.CartID); err != nil {
			return uuid.Nil, fmt.Errorf("q.UnbindCartSession: %w", err)
		}

		return orderID, nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("withTx: %w", err)
	}

	return orderID, nil
}

func mapDomainOrderFilterToDBFilter(filter domain.OrderFilter) db.SearchOrdersParams {
	statuses := lo.Map(filter.Statuses, func(s domain.OrderStatus, _ int) int16 {
		return s.Code()
	})

	createdAt := lo.FromPtr(filter.CreatedAt)

	return db.SearchOrdersParams{
		Ids:           nilSliceIfEmpty(filter.IDs),
		UserIds:       nilSliceIfEmpty(filter.UserIDs),
		CartIds:       nilSliceIfEmpty(filter.CartIDs),
		Statuses:      nilSliceIfEmpty(statuses),
		CreatedAfter:  createdAt.After,
		CreatedBefore: createdAt.Before,
	}
}

func (r *orderRepository) SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("filter.Validate: %w", err)
	}

	orders, err := withTx(ctx, r.dbtx, func(q *db.Queries) ([]domain.Order, error) {
		dbOrders, err := q.SearchOrders(ctx, mapDomainOrderFilterToDBFilter(filter))
		if err != nil {
			return nil, fmt.Errorf("q.SearchOrders: %w", err)
		}

		orders := make([]domain.Order, 0, len(dbOrders))

		// TODO: batch items of all carts in one query
		for _, dbOrder := range dbOrders {
			order, err := loadOrder(ctx, q, dbOrder)
			if err != nil {
				return nil, err
			}
			orders = append(orders, order)
		}

		return orders, nil
	})
	if err != nil {
		return nil, fmt.Errorf("withTx: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) error {
	if orderID == uuid.Nil {
		return fmt.Errorf("orderID is empty")
	}

	if !status.Known() {
		return fmt.Errorf("status is unknown: %s", status)
	}

	cmdTag, err := r.q.UpdateOrderStatus(ctx, db.UpdateOrderStatusParams{
		ID:     orderID,
		Status: status.Code(),
	})
	if err != nil {
		return fmt.Errorf("q.UpdateOrderStatus: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("q.UpdateOrderStatus: %w", ErrNotFound)
	}

	return nil
}

// DeleteOrder removes the order row unconditionally.
func (r *orderRepository) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	if orderID == uuid.Nil {
		return fmt.Errorf("orderID is empty")
	}

	cmdTag, err := r.q.DeleteOrder(ctx, orderID)
	if err != nil {
		return fmt.Errorf("q.DeleteOrder: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("q.DeleteOrder: %w", ErrNotFound)
	}

	return nil
}

func loadOrder(ctx context.Context, q *db.Queries, dbOrder db.Order) (domain.Order, error) {
	dbItems, err := q.GetCartItems(ctx, dbOrder.CartID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.GetCartItems: %w", err)
	}

	order, err := mapDBOrderToDomain(dbOrder, dbItems)
	if err != nil {
		return domain.Order{}, fmt.Errorf("mapDBOrderToDomain: %w", err)
	}

	return order, nil
}

func mapDBOrderToDomain(dbOrder db.Order, dbItems []db.GetCartItemsRow) (domain.Order, error) {
	parsedCurrency, err := parseCurrency(dbOrder.TotalCurrency)
	if err != nil {
		return domain.Order{}, err
	}

	items, err := mapGetCartItemsRowsToDomain(dbItems)
	if err != nil {
		return domain.Order{}, fmt.Errorf("mapGetCartItemsRowsToDomain: %w", err)
	}

	// the order snapshots what was in the cart, removed items are history of the cart only
	items = lo.Filter(items, func(item domain.CartItem, _ int) bool {
		return item.IsActive()
	})

	return domain.Order{
		ID:         dbOrder.ID,
		CartID:     dbOrder.CartID,
		UserID:     dbOrder.UserID,
		AddressID:  dbOrder.AddressID,
		Status:     domain.OrderStatusFromCode(dbOrder.Status),
		Total:      domain.Money{Amount: dbOrder.TotalAmount, Currency: parsedCurrency},
		Code:       dbOrder.Code,
		Annotation: dbOrder.Annotation,
		Items:      items,
		CreatedAt:  dbOrder.CreatedAt,
		UpdatedAt:  dbOrder.UpdatedAt,
	}, nil
}

func nilSliceIfEmpty[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return s
}
