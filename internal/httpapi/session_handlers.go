package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/nikolayk812/storefront/internal/apperr"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/identitymap"
	"github.com/nikolayk812/storefront/internal/repository"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload loginRequest
	if err := decodeJSONBody(w, r, &payload); err != nil {
		writeError(ctx, a.log, w, err)
		return
	}

	sess, _ := sessionFromContext(ctx)

	next, user, err := a.auth.Login(ctx, sess.Token, payload.Email, payload.Password)
	if err != nil {
		writeError(ctx, a.log, w, err)
		return
	}

	a.setSessionCookie(w, next)

	writeSuccess(w, userResponse{ID: user.ID, Name: user.Name, Email: user.Email})
}

func (a *API) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := sessionFromContext(ctx)

	next, err := a.auth.Logout(ctx, sess.Token)
	if err != nil {
		writeError(ctx, a.log, w, err)
		return
	}

	a.setSessionCookie(w, next)

	w.WriteHeader(http.StatusNoContent)
}

// currentUser loads the user bound to the request session.
func (a *API) currentUser(r *http.Request) (domain.User, error) {
	ctx := r.Context()

	sess, ok := sessionFromContext(ctx)
	if !ok || !sess.Authenticated() {
		return domain.User{}, apperr.New(apperr.CodeUnauthorized, "login required")
	}

	userID := *sess.UserID
	user, err := identitymap.Load(ctx, identitymap.KindUser, userID, func(ctx context.Context) (domain.User, error) {
		return a.users.GetUser(ctx, userID)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return domain.User{}, apperr.Wrap(apperr.CodeUnauthorized, err, "login required")
	}
	if err != nil {
		return domain.User{}, apperr.Wrap(apperr.CodeInternal, err, "loading user failed")
	}
	return user, nil
}
