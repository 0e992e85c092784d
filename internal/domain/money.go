package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func ZeroMoney(unit currency.Unit) Money {
	return Money{Amount: decimal.Zero, Currency: unit}
}

// Add sums two amounts of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("currency mismatch: %s != %s", m.Currency, other.Currency)
	}

	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}, nil
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Currency, m.Amount.StringFixed(2))
}
