package httpapi

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/apperr"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/service"
	"github.com/samber/lo"
)

type createOrderRequest struct {
	AddressID  uuid.UUID `json:"address_id" validate:"required"`
	Annotation *string   `json:"annotation" validate:"omitempty,max=500"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// createOrder checks out the session cart, then rotates the session token.
func (a *API) createOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload createOrderRequest
	if err := decodeJSONBody(w, r, &payload); err != nil {
		writeError(ctx, a.log, w, err)
		return
	}

	sess, _ := sessionFromContext(ctx)

	cart, err := a.carts.CurrentCart(ctx, sess)
	if err != nil {
		writeError(ctx, a.log, w, err)
		return
	}

	order, err := a.orders.Create(ctx, service.CreateOrderInput{
		CartID:     cart.ID,
		UserID:     *sess.UserID,
		AddressID:  payload.AddressID,
		Annotation: payload.Annotation,
	})
	if err != nil {
		writeError(ctx, a.log, w, err)
		return
	}

	next, err := a.sessionStore.Rotate(ctx, sess.Token)
	if err != nil {
		// the order stands; the old token just keeps resolving to a fresh cart
		a.log.Warn(ctx, "session rotation after checkout failed", err)
	} else {
		a.setSessionCookie(w, next)
	}

	writeSuccessStatus(w, http.StatusCreated, a.newOrderResponse(order))
}

func (a *API) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := sessionFromContext(ctx)

	orders, err := a.orders.ListForUser(ctx, *sess.UserID)
	if err != nil {
		writeError(ctx, a.log, w, err)
		return
	}

	writeSuccess(w, lo.Map(orders, func(o domain.Order, _ int) orderResponse {
		return a.newOrderResponse(o)
	}))
}

// getOrder serves the owner and admins; anyone else sees not found.
func (a *API) getOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := uuidParam(r, "orderID")
	if err != nil {
		writeError(ctx, a.log, w, err)
		return
	}

	order, err := a.orders.Get(ctx, orderID)
	if err != nil {
		writeError(ctx, a.log, w, err)
		return
	}

	user, err := a.currentUser(r)
	if err != nil {
		writeError(ctx, a.log, w, err)
		return
	}

	if order.UserID != user.ID && !user.IsAdmin {
		writeError(ctx, a.log, w, apperr.New(apperr.CodeNotFound, "order does not exist"))
		return
	}

	writeSuccess(w, a.newOrderResponse(order))
}

func (a *API) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := uuidParam(r, "orderID")
	if err != nil {
		writeError(ctx, a.log, w, err)
		return
	}

	var payload updateOrderStatusRequest
	if err := decodeJSONBody(w, r, &payload); err != nil {
		writeError(ctx, a.log, w, err)
		return
	}

	status, err := domain.ToOrderStatus(payload.Status)
	if err != nil {
		writeError(ctx, a.log, w, apperr.Wrap(apperr.CodeValidation, err, "invalid status").
			WithDetails(map[string]any{"allowed": lo.Map(domain.OrderStatuses(), func(s domain.OrderStatus, _ int) string {
				return s.String()
			})}))
		return
	}

	order, err := a.orders.AdvanceStatus(ctx, orderID, status)
	if err != nil {
		writeError(ctx, a.log, w, err)
		return
	}

	writeSuccess(w, a.newOrderResponse(order))
}

func (a *API) deleteOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := uuidParam(r, "orderID")
	if err != nil {
		writeError(ctx, a.log, w, err)
		return
	}

	if err := a.orders.Delete(ctx, orderID); err != nil {
		writeError(ctx, a.log, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
