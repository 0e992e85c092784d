package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrCartAlreadyOrdered = errors.New("cart already has an order")
	ErrDuplicate          = errors.New("duplicate")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	ordersCartIDConstraint = "orders_cart_id_key"
)

// mapPgError translates constraint violations into repository sentinels.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		if pgErr.ConstraintName == ordersCartIDConstraint {
			return errors.Join(ErrCartAlreadyOrdered, err)
		}
		return errors.Join(ErrDuplicate, err)
	case pgForeignKeyViolation:
		return errors.Join(ErrNotFound, err)
	}

	return err
}
