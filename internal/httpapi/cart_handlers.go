package httpapi

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/apperr"
	"github.com/nikolayk812/storefront/internal/domain"
)

type addCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}

type setDestinationRequest struct {
	PostalCode string `json:"postal_code" validate:"required,max=9"`
}

type setAddressRequest struct {
	AddressID uuid.UUID `json:"address_id" validate:"required"`
}

func (a *API) currentCart(r *http.Request) (domain.Cart, error) {
	sess, ok := sessionFromContext(r.Context())
	if !ok {
		return domain.Cart{}, apperr.New(apperr.CodeUnauthorized, "session is required")
	}
	return a.carts.CurrentCart(r.Context(), sess)
}

func (a *API) getCart(w http.ResponseWriter, r *http.Request) {
	cart, err := a.currentCart(r)
	if err != nil {
		writeError(r.Context(), a.log, w, err)
		return
	}

	writeSuccess(w, newCartResponse(cart))
}

func (a *API) addCartItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload addCartItemRequest
	if err := decodeJSONBody(w, r, &payload); err != nil {
		writeError(ctx, a.log, w, err)
		return
	}

	cart, err := a.currentCart(r)
	if err != nil {
		writeError(ctx, a.log, w, err)
		return
	}

	cart, err = a.carts.AddItem(ctx, cart.ID, payload.ProductID)
	if err != nil {
		writeError(ctx, a.log, w, err)
		return
	}

	writeSuccessStatus(w, http.StatusCreated, newCartResponse(cart))
}

// removeCartItem removes one unit, or every unit with ?all=true.
func (a *API) removeCartItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID, err := uuidParam(r, "productID")
	if err != nil {
		writeError(ctx, a.log, w, err)
		return
	}

	removeAll := false
	if raw := r.URL.Query().Get("all"); raw != "" {
		removeAll, err = strconv.ParseBool(raw)
		if err != nil {
			writeError(ctx, a.log, w, apperr.Wrap(apperr.CodeValidation, err, "invalid all"))
			return
		}
	}

	cart, err := a.currentCart(r)
	if err != nil {
		writeError(ctx, a.log, w, err)
		return
	}

	cart, err = a.carts.RemoveItem(ctx, cart.ID, productID, removeAll)
	if err != nil {
		writeError(ctx, a.log, w, err)
		return
	}

	writeSuccess(w, newCartResponse(cart))
}

func (a *API) setCartDestination(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload setDestinationRequest
	if err := decodeJSONBody(w, r, &payload); err != nil {
		writeError(ctx, a.log, w, err)
		return
	}

	cart, err := a.currentCart(r)
	if err != nil {
		writeError(ctx, a.log, w, err)
		return
	}

	cart, err = a.carts.SetDestination(ctx, cart.ID, payload.PostalCode)
	if err != nil {
		writeError(ctx, a.log, w, err)
		return
	}

	writeSuccess(w, newCartResponse(cart))
}

func (a *API) setCartAddress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload setAddressRequest
	if err := decodeJSONBody(w, r, &payload); err != nil {
		writeError(ctx, a.log, w, err)
		return
	}

	cart, err := a.currentCart(r)
	if err != nil {
		writeError(ctx, a.log, w, err)
		return
	}

	cart, err = a.carts.SetAddress(ctx, cart.ID, payload.AddressID)
	if err != nil {
		writeError(ctx, a.log, w, err)
		return
	}

	writeSuccess(w, newCartResponse(cart))
}
