package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	TaxID        *string
	IsAdmin      bool

	CreatedAt time.Time
}

// HasVerifiedTaxID reports whether the user carries a well-formed CPF.
func (u User) HasVerifiedTaxID() bool {
	return u.TaxID != nil && ValidCPF(*u.TaxID)
}

type Address struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Street     string
	Number     string
	Complement string
	District   string
	City       string
	State      string
	Country    string
	PostalCode string
	IsDefault  bool

	CreatedAt time.Time
}
