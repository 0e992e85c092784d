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

type addressRepository struct {
	q *db.Queries
}

func NewAddress(pool *pgxpool.Pool) port.AddressRepository {
	return &addressRepository{
		q: db.New(pool),
	}
}

func (r *addressRepository) GetAddress(ctx context.Context, addressID uuid.UUID) (domain.Address, error) {
	dbAddress, err := r.q.GetAddress(ctx, addressID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Address{}, fmt.Errorf("q.GetAddress: %w", ErrNotFound)
		}
		return domain.Address{}, fmt.Errorf("q.GetAddress: %w", err)
	}

	return mapDBAddressToDomain(dbAddress), nil
}

// GetDefaultAddress falls back to the newest address when none is flagged as default.
func (r *addressRepository) GetDefaultAddress(ctx context.Context, userID uuid.UUID) (domain.Address, error) {
	dbAddress, err := r.q.GetDefaultAddress(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Address{}, fmt.Errorf("q.GetDefaultAddress: %w", ErrNotFound)
		}
		return domain.Address{}, fmt.Errorf("q.GetDefaultAddress: %w", err)
	}

	return mapDBAddressToDomain(dbAddress), nil
}

func (r *addressRepository) ListAddresses(ctx context.Context, userID uuid.UUID) ([]domain.Address, error) {
	dbAddresses, err := r.q.ListAddresses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("q.ListAddresses: %w", err)
	}

	return lo.Map(dbAddresses, func(a db.Address, _ int) domain.Address {
		return mapDBAddressToDomain(a)
	}), nil
}

func (r *addressRepository) InsertAddress(ctx context.Context, address domain.Address) (uuid.UUID, error) {
	if address.UserID == uuid.Nil {
		return uuid.Nil, errors.New("userID is empty")
	}

	postalCode, err := domain.NormalizePostalCode(address.PostalCode)
	if err != nil {
		return uuid.Nil, fmt.Errorf("domain.NormalizePostalCode: %w", err)
	}

	addressID, err := r.q.InsertAddress(ctx, db.InsertAddressParams{
		UserID:     address.UserID,
		Street:     address.Street,
		Number:     address.Number,
		Complement: address.Complement,
		District:   address.District,
		City:       address.City,
		State:      address.State,
		Country:    address.Country,
		PostalCode: postalCode,
		IsDefault:  address.IsDefault,
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("q.InsertAddress: %w", mapPgError(err))
	}

	return addressID, nil
}

func mapDBAddressToDomain(a db.Address) domain.Address {
	return domain.Address{
		ID:         a.ID,
		UserID:     a.UserID,
		Street:     a.Street,
		Number:     a.Number,
		Complement: a.Complement,
		District:   a.District,
		City:       a.City,
		State:      a.State,
		Country:    a.Country,
		PostalCode: a.PostalCode,
		IsDefault:  a.IsDefault,
		CreatedAt:  a.CreatedAt,
	}
}
