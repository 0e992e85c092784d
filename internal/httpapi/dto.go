package httpapi

import (
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/samber/lo"
)

type moneyResponse struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

func newMoneyResponse(m domain.Money) moneyResponse {
	return moneyResponse{
		Amount:   m.Amount.StringFixed(2),
		Currency: m.Currency.String(),
	}
}

type freightResponse struct {
	Cost         string `json:"cost"`
	Method       string `json:"method,omitempty"`
	LeadTimeDays int    `json:"lead_time_days"`
}

type cartLineResponse struct {
	ProductID uuid.UUID     `json:"product_id"`
	Quantity  int           `json:"quantity"`
	UnitPrice moneyResponse `json:"unit_price"`
	Total     moneyResponse `json:"total"`
}

type cartResponse struct {
	ID           uuid.UUID          `json:"id"`
	UserID       *uuid.UUID         `json:"user_id,omitempty"`
	AddressID    *uuid.UUID         `json:"address_id,omitempty"`
	PostalCode   string             `json:"postal_code,omitempty"`
	Lines        []cartLineResponse `json:"lines"`
	ItemCount    int                `json:"item_count"`
	RemovedCount int                `json:"removed_count"`
	Subtotal     moneyResponse      `json:"subtotal"`
	Freight      freightResponse    `json:"freight"`
	Total        moneyResponse      `json:"total"`
}

func newCartResponse(c domain.Cart) cartResponse {
	lines := lo.Map(c.Lines(), func(l domain.CartLine, _ int) cartLineResponse {
		return cartLineResponse{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: newMoneyResponse(l.UnitPrice),
			Total:     newMoneyResponse(l.Total),
		}
	})

	return cartResponse{
		ID:           c.ID,
		UserID:       c.UserID,
		AddressID:    c.AddressID,
		PostalCode:   c.PostalCode,
		Lines:        lines,
		ItemCount:    c.Package().Count,
		RemovedCount: len(c.RemovedItems()),
		Subtotal:     newMoneyResponse(c.Subtotal()),
		Freight: freightResponse{
			Cost:         c.FreightCost().StringFixed(2),
			Method:       c.Freight.Method,
			LeadTimeDays: c.Freight.LeadTimeDays,
		},
		Total: newMoneyResponse(c.Total()),
	}
}

type orderItemResponse struct {
	ProductID uuid.UUID     `json:"product_id"`
	Price     moneyResponse `json:"price"`
}

type orderResponse struct {
	ID         uuid.UUID           `json:"id"`
	Code       string              `json:"code"`
	CartID     uuid.UUID           `json:"cart_id"`
	UserID     uuid.UUID           `json:"user_id"`
	AddressID  uuid.UUID           `json:"address_id"`
	Status     string              `json:"status"`
	Total      moneyResponse       `json:"total"`
	Annotation *string             `json:"annotation,omitempty"`
	Items      []orderItemResponse `json:"items"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
	ExpiresAt  time.Time           `json:"expires_at"`
	Expired    bool                `json:"expired"`
}

func (a *API) newOrderResponse(o domain.Order) orderResponse {
	return orderResponse{
		ID:         o.ID,
		Code:       o.Code,
		CartID:     o.CartID,
		UserID:     o.UserID,
		AddressID:  o.AddressID,
		Status:     o.Status.String(),
		Total:      newMoneyResponse(o.Total),
		Annotation: o.Annotation,
		Items: lo.Map(o.Items, func(i domain.CartItem, _ int) orderItemResponse {
			return orderItemResponse{ProductID: i.ProductID, Price: newMoneyResponse(i.Price)}
		}),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
		ExpiresAt: a.orders.ExpiresAt(o),
		Expired:   a.orders.IsExpired(o),
	}
}

type userResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}
