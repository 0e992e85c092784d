package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

// FreightCalculator quotes a package. Ordinary unavailability is reported as domain.ErrNoQuote.
type FreightCalculator interface {
	Quote(ctx context.Context, req domain.FreightRequest) (domain.FreightQuote, error)
}
