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
)

type userRepository struct {
	q *db.Queries
}

func NewUser(pool *pgxpool.Pool) port.UserRepository {
	return &userRepository{
		q: db.New(pool),
	}
}

func (r *userRepository) GetUser(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	dbUser, err := r.q.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, fmt.Errorf("q.GetUser: %w", ErrNotFound)
		}
		return domain.User{}, fmt.Errorf("q.GetUser: %w", err)
	}

	return mapDBUserToDomain(dbUser), nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return domain.User{}, errors.New("email is empty")
	}

	dbUser, err := r.q.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, fmt.Errorf("q.GetUserByEmail: %w", ErrNotFound)
		}
		return domain.User{}, fmt.Errorf("q.GetUserByEmail: %w", err)
	}

	return mapDBUserToDomain(dbUser), nil
}

func (r *userRepository) InsertUser(ctx context.Context, user domain.User) (uuid.UUID, error) {
	email := normalizeEmail(user.Email)
	if email == "" {
		return uuid.Nil, errors.New("email is empty")
	}
	if user.PasswordHash == "" {
		return uuid.Nil, errors.New("password hash is empty")
	}

	userID, err := r.q.InsertUser(ctx, db.InsertUserParams{
		Name:         user.Name,
		Email:        email,
		PasswordHash: user.PasswordHash,
		TaxID:        lo.EmptyableToPtr(lo.FromPtr(user.TaxID)),
		IsAdmin:      user.IsAdmin,
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("q.InsertUser: %w", mapPgError(err))
	}

	return userID, nil
}

func mapDBUserToDomain(dbUser db.User) domain.User {
	return domain.User{
		ID:           dbUser.ID,
		Name:         dbUser.Name,
		Email:        dbUser.Email,
		PasswordHash: dbUser.PasswordHash,
		TaxID:        dbUser.TaxID,
		IsAdmin:      dbUser.IsAdmin,
		CreatedAt:    dbUser.CreatedAt,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
