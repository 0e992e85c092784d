package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

type SessionStore interface {
	Start(ctx context.Context) (domain.Session, error)
	Load(ctx context.Context, token string) (domain.Session, error)
	BindUser(ctx context.Context, token string, userID uuid.UUID) error
	Rotate(ctx context.Context, token string) (domain.Session, error)
	End(ctx context.Context, token string) error
}
