package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Cart struct {
	ID           uuid.UUID
	SessionToken *string
	UserID       *uuid.UUID
	AddressID    *uuid.UUID
	PostalCode   string
	Currency     currency.Unit
	Freight      Freight
	Items        []CartItem

	CreatedAt time.Time
}

// CartItem is a single unit of a product; quantities are counts of active items.
type CartItem struct {
	ID         uuid.UUID
	ProductID  uuid.UUID
	Price      Money
	Dimensions Dimensions
	State      LineState

	CreatedAt time.Time
}

// LineState is either Active or Removed.
type LineState interface {
	lineState()
}

type Active struct{}

type Removed struct {
	At time.Time
}

func (Active) lineState()  {}
func (Removed) lineState() {}

func (i CartItem) IsActive() bool {
	_, removed := i.State.(Removed)
	return !removed
}

// RemovedAt returns the removal time of a removed item.
func (i CartItem) RemovedAt() (time.Time, bool) {
	if r, ok := i.State.(Removed); ok {
		return r.At, true
	}
	return time.Time{}, false
}

type Freight struct {
	Cost         decimal.Decimal
	Method       string
	LeadTimeDays int
}

func (f Freight) IsZero() bool {
	return f.Cost.IsZero() && f.Method == "" && f.LeadTimeDays == 0
}

// PackageMetrics sums price, dimensions and weight over active items.
type PackageMetrics struct {
	Price  decimal.Decimal
	Width  decimal.Decimal
	Height decimal.Decimal
	Length decimal.Decimal
	Weight decimal.Decimal
	Count  int
}

func (c Cart) ActiveItems() []CartItem {
	return lo.Filter(c.Items, func(item CartItem, _ int) bool {
		return item.IsActive()
	})
}

func (c Cart) RemovedItems() []CartItem {
	return lo.Filter(c.Items, func(item CartItem, _ int) bool {
		return !item.IsActive()
	})
}

func (c Cart) Package() PackageMetrics {
	m := PackageMetrics{
		Price:  decimal.Zero,
		Width:  decimal.Zero,
		Height: decimal.Zero,
		Length: decimal.Zero,
		Weight: decimal.Zero,
	}

	for _, item := range c.ActiveItems() {
		m.Price = m.Price.Add(item.Price.Amount)
		m.Width = m.Width.Add(item.Dimensions.Width)
		m.Height = m.Height.Add(item.Dimensions.Height)
		m.Length = m.Length.Add(item.Dimensions.Length)
		m.Weight = m.Weight.Add(item.Dimensions.Weight)
		m.Count++
	}

	return m
}

func (c Cart) Subtotal() Money {
	return Money{Amount: c.Package().Price, Currency: c.Currency}
}

// FreightCost is the freight charged for the cart; an empty cart ships nothing.
func (c Cart) FreightCost() decimal.Decimal {
	if c.IsEmpty() {
		return decimal.Zero
	}
	return c.Freight.Cost
}

// Total is the subtotal of active items plus the charged freight.
func (c Cart) Total() Money {
	return Money{Amount: c.Package().Price.Add(c.FreightCost()), Currency: c.Currency}
}

// Quantity counts active items of the product.
func (c Cart) Quantity(productID uuid.UUID) int {
	return lo.CountBy(c.ActiveItems(), func(item CartItem) bool {
		return item.ProductID == productID
	})
}

func (c Cart) IsEmpty() bool {
	return c.Package().Count == 0
}

type CartLine struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice Money
	Total     Money
}

// Lines groups active items per product, in order of first insertion.
// UnitPrice is the price of the most recently added unit.
func (c Cart) Lines() []CartLine {
	active := c.ActiveItems()
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].CreatedAt.Before(active[j].CreatedAt)
	})

	var (
		order []uuid.UUID
		lines = make(map[uuid.UUID]CartLine)
	)

	for _, item := range active {
		line, ok := lines[item.ProductID]
		if !ok {
			order = append(order, item.ProductID)
			line = CartLine{
				ProductID: item.ProductID,
				Total:     ZeroMoney(item.Price.Currency),
			}
		}

		line.Quantity++
		line.UnitPrice = item.Price
		line.Total.Amount = line.Total.Amount.Add(item.Price.Amount)
		lines[item.ProductID] = line
	}

	return lo.Map(order, func(id uuid.UUID, _ int) CartLine {
		return lines[id]
	})
}
