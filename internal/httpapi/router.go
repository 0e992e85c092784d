// Package httpapi exposes the cart, checkout and order operations as a JSON API.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/logger"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type CartService interface {
	CurrentCart(ctx context.Context, sess domain.Session) (domain.Cart, error)
	AddItem(ctx context.Context, cartID, productID uuid.UUID) (domain.Cart, error)
	RemoveItem(ctx context.Context, cartID, productID uuid.UUID, removeAll bool) (domain.Cart, error)
	SetDestination(ctx context.Context, cartID uuid.UUID, postalCode string) (domain.Cart, error)
	SetAddress(ctx context.Context, cartID, addressID uuid.UUID) (domain.Cart, error)
}

type OrderService interface {
	Create(ctx context.Context, in service.CreateOrderInput) (domain.Order, error)
	Get(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error)
	AdvanceStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) (domain.Order, error)
	Delete(ctx context.Context, orderID uuid.UUID) error
	IsExpired(order domain.Order) bool
	ExpiresAt(order domain.Order) time.Time
}

type AuthService interface {
	Login(ctx context.Context, token, email, password string) (domain.Session, domain.User, error)
	Logout(ctx context.Context, token string) (domain.Session, error)
}

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) error

type CookieConfig struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

type Deps struct {
	Carts    CartService
	Orders   OrderService
	Auth     AuthService
	Sessions port.SessionStore
	Users    port.UserRepository
	Logger   *logger.Logger
	Metrics  *Metrics
	// Gatherer serves /metrics when set.
	Gatherer prometheus.Gatherer
	Checks   map[string]HealthCheck
	Cookie   CookieConfig
}

type API struct {
	carts        CartService
	orders       OrderService
	auth         AuthService
	sessionStore port.SessionStore
	users        port.UserRepository
	log          *logger.Logger
	metrics      *Metrics
	checks       map[string]HealthCheck
	cookie       CookieConfig
}

func NewRouter(d Deps) (http.Handler, error) {
	if d.Carts == nil || d.Orders == nil || d.Auth == nil || d.Sessions == nil || d.Users == nil {
		return nil, errors.New("httpapi: services are required")
	}
	if d.Cookie.Name == "" {
		return nil, errors.New("httpapi: cookie name is required")
	}

	log := d.Logger
	if log == nil {
		log = logger.Nop()
	}

	a := &API{
		carts:        d.Carts,
		orders:       d.Orders,
		auth:         d.Auth,
		sessionStore: d.Sessions,
		users:        d.Users,
		log:          log,
		metrics:      d.Metrics,
		checks:       d.Checks,
		cookie:       d.Cookie,
	}

	r := chi.NewRouter()
	r.Use(
		recoverer(log),
		requestID(log),
		logging(log, d.Metrics),
	)

	r.Get("/healthz", a.health)
	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(identityMapPerRequest, a.sessions)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", a.getCart)
			r.Post("/items", a.addCartItem)
			r.Delete("/items/{productID}", a.removeCartItem)
			r.Put("/destination", a.setCartDestination)
			r.Put("/address", a.setCartAddress)
		})

		r.Route("/session", func(r chi.Router) {
			r.Post("/login", a.login)
			r.Post("/logout", a.logout)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(a.requireUser)
			r.Post("/", a.createOrder)
			r.Get("/", a.listOrders)
			r.Get("/{orderID}", a.getOrder)
		})

		r.Route("/admin/orders", func(r chi.Router) {
			r.Use(a.requireUser, a.requireAdmin)
			r.Put("/{orderID}/status", a.updateOrderStatus)
			r.Delete("/{orderID}", a.deleteOrder)
		})
	})

	return r, nil
}
