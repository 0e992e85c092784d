package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID         uuid.UUID
	Name       string
	Price      Money
	Dimensions Dimensions
	URL        string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Dimensions are centimeters and kilograms, as the carrier expects them.
type Dimensions struct {
	Width  decimal.Decimal
	Height decimal.Decimal
	Length decimal.Decimal
	Weight decimal.Decimal
}
