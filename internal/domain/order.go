package domain

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	ID         uuid.UUID
	CartID     uuid.UUID
	UserID     uuid.UUID
	AddressID  uuid.UUID
	Status     OrderStatus
	Total      Money
	Code       string
	Annotation *string
	Items      []CartItem

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ExpiresAt is the end of the grace window for late payment actions.
func (o Order) ExpiresAt(graceDays int) time.Time {
	return o.CreatedAt.AddDate(0, 0, graceDays)
}

func (o Order) IsExpired(now time.Time, graceDays int) bool {
	return now.After(o.ExpiresAt(graceDays))
}
