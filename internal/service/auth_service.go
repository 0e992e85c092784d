package service

import (
	"context"
	"errors"
	"strings"

	"github.com/nikolayk812/storefront/internal/apperr"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/logger"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users    port.UserRepository
	carts    port.CartRepository
	sessions port.SessionStore
	log      *logger.Logger
}

func NewAuthService(users port.UserRepository, carts port.CartRepository, sessions port.SessionStore, log *logger.Logger) (*AuthService, error) {
	if users == nil || carts == nil || sessions == nil {
		return nil, errors.New("auth service: users, carts and sessions are required")
	}
	if log == nil {
		log = logger.Nop()
	}

	return &AuthService{users: users, carts: carts, sessions: sessions, log: log}, nil
}

// Login checks the credentials and binds the user to a fresh session token.
// The previous token stops resolving; its guest cart moves to the new token.
func (s *AuthService) Login(ctx context.Context, token, email, password string) (domain.Session, domain.User, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Session{}, domain.User{}, apperr.Wrap(apperr.CodeUnauthorized, ErrBadCredentials, ErrBadCredentials.Error())
	}
	if err != nil {
		return domain.Session{}, domain.User{}, apperr.Wrap(apperr.CodeInternal, err, "loading user failed")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.Session{}, domain.User{}, apperr.Wrap(apperr.CodeUnauthorized, ErrBadCredentials, ErrBadCredentials.Error())
	}

	sess, err := s.sessions.Rotate(ctx, token)
	if err != nil {
		return domain.Session{}, domain.User{}, apperr.Wrap(apperr.CodeUnauthorized, err, "session expired")
	}

	if err := s.sessions.BindUser(ctx, sess.Token, user.ID); err != nil {
		return domain.Session{}, domain.User{}, apperr.Wrap(apperr.CodeInternal, err, "binding session failed")
	}
	sess.UserID = &user.ID

	ctx = s.log.WithUserID(ctx, user.ID.String())

	err = s.carts.RebindSession(ctx, token, sess.Token)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		// no guest cart yet
	case err != nil:
		return domain.Session{}, domain.User{}, apperr.Wrap(apperr.CodeInternal, err, "moving guest cart failed")
	}

	s.log.Info(ctx, "user logged in")

	return sess, user, nil
}

// Logout ends the session and starts a guest one in its place.
func (s *AuthService) Logout(ctx context.Context, token string) (domain.Session, error) {
	if err := s.sessions.End(ctx, token); err != nil {
		return domain.Session{}, apperr.Wrap(apperr.CodeInternal, err, "ending session failed")
	}

	sess, err := s.sessions.Start(ctx)
	if err != nil {
		return domain.Session{}, apperr.Wrap(apperr.CodeInternal, err, "starting session failed")
	}
	return sess, nil
}

func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password is empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
