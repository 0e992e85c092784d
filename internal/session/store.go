// Package session keeps browser sessions in Redis.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "storefront:session:"
	tokenBytes = 32
	guestValue = "-"
)

var ErrNotFound = errors.New("session not found")

type cmdable interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd
	SetXX(ctx context.Context, key string, value any, ttl time.Duration) *redis.BoolCmd
	GetEx(ctx context.Context, key string, ttl time.Duration) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Store is a sliding-TTL session store. The value under each token is the bound
// user id, or a guest marker.
type Store struct {
	client cmdable
	ttl    time.Duration
}

var _ port.SessionStore = (*Store)(nil)

func NewStore(client redis.Cmdable, ttl time.Duration) (*Store, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if ttl <= 0 {
		return nil, errors.New("session ttl must be positive")
	}

	return &Store{client: client, ttl: ttl}, nil
}

func (s *Store) Start(ctx context.Context) (domain.Session, error) {
	return s.issue(ctx, guestValue)
}

// Load refreshes the TTL of the session it returns.
func (s *Store) Load(ctx context.Context, token string) (domain.Session, error) {
	if strings.TrimSpace(token) == "" {
		return domain.Session{}, ErrNotFound
	}

	value, err := s.client.GetEx(ctx, key(token), s.ttl).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Session{}, ErrNotFound
		}
		return domain.Session{}, fmt.Errorf("client.GetEx: %w", err)
	}

	return parse(token, value)
}

func (s *Store) BindUser(ctx context.Context, token string, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return errors.New("userID is empty")
	}

	ok, err := s.client.SetXX(ctx, key(token), userID.String(), s.ttl).Result()
	if err != nil {
		return fmt.Errorf("client.SetXX: %w", err)
	}
	if !ok {
		return ErrNotFound
	}

	return nil
}

// Rotate issues a fresh token carrying the same user binding and drops the old one.
func (s *Store) Rotate(ctx context.Context, token string) (domain.Session, error) {
	current, err := s.Load(ctx, token)
	if err != nil {
		return domain.Session{}, err
	}

	value := guestValue
	if current.Authenticated() {
		value = current.UserID.String()
	}

	next, err := s.issue(ctx, value)
	if err != nil {
		return domain.Session{}, err
	}

	if err := s.client.Del(ctx, key(token)).Err(); err != nil {
		return domain.Session{}, fmt.Errorf("client.Del: %w", err)
	}

	return next, nil
}

func (s *Store) End(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, key(token)).Err(); err != nil {
		return fmt.Errorf("client.Del: %w", err)
	}
	return nil
}

func (s *Store) issue(ctx context.Context, value string) (domain.Session, error) {
	token, err := newToken()
	if err != nil {
		return domain.Session{}, err
	}

	if err := s.client.Set(ctx, key(token), value, s.ttl).Err(); err != nil {
		return domain.Session{}, fmt.Errorf("client.Set: %w", err)
	}

	return parse(token, value)
}

func parse(token, value string) (domain.Session, error) {
	if value == guestValue {
		return domain.Session{Token: token}, nil
	}

	userID, err := uuid.Parse(value)
	if err != nil {
		return domain.Session{}, fmt.Errorf("uuid.Parse: %w", err)
	}

	return domain.Session{Token: token, UserID: &userID}, nil
}

func key(token string) string {
	return keyPrefix + token
}

func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand.Read: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
