package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/apperr"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/identitymap"
	"github.com/nikolayk812/storefront/internal/logger"
	"github.com/nikolayk812/storefront/internal/session"
)

const requestIDHeader = "X-Request-Id"

func requestID(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}

			w.Header().Set(requestIDHeader, reqID)

			next.ServeHTTP(w, r.WithContext(log.WithRequestID(r.Context(), reqID)))
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func logging(log *logger.Logger, metrics *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := log.WithFields(r.Context(), map[string]any{
				"method": r.Method,
				"path":   r.URL.Path,
			})

			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()

			next.ServeHTTP(rec, r.WithContext(ctx))

			if rec.status == 0 {
				rec.status = http.StatusOK
			}
			elapsed := time.Since(start)

			var route string
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				route = rctx.RoutePattern()
			}
			metrics.observe(r.Method, route, rec.status, elapsed)

			ctx = log.WithFields(ctx, map[string]any{
				"status":      rec.status,
				"duration_ms": elapsed.Milliseconds(),
			})
			log.Info(ctx, "request.complete")
		})
	}
}

func recoverer(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					err := fmt.Errorf("panic: %v", rec)
					ctx := log.WithField(r.Context(), "panic", fmt.Sprint(rec))
					writeError(ctx, log, w, apperr.Wrap(apperr.CodeInternal, err, "panic"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// identityMapPerRequest scopes entity loads to one request.
func identityMapPerRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := identitymap.WithMap(r.Context(), identitymap.New())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessions resolves the session cookie, starting a guest session when it is
// missing or expired.
func (a *API) sessions(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var (
			sess domain.Session
			err  error
		)

		cookie, cookieErr := r.Cookie(a.cookie.Name)
		if cookieErr == nil {
			sess, err = a.sessionStore.Load(ctx, cookie.Value)
		}

		if cookieErr != nil || errors.Is(err, session.ErrNotFound) {
			sess, err = a.sessionStore.Start(ctx)
			if err == nil {
				a.setSessionCookie(w, sess)
			}
		}

		if err != nil {
			writeError(ctx, a.log, w, apperr.Wrap(apperr.CodeDependency, err, "session store unavailable"))
			return
		}

		ctx = a.log.WithSession(ctx, sess.Token)
		if sess.Authenticated() {
			ctx = a.log.WithUserID(ctx, sess.UserID.String())
		}

		next.ServeHTTP(w, r.WithContext(withSession(ctx, sess)))
	})
}

func (a *API) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFromContext(r.Context())
		if !ok || !sess.Authenticated() {
			writeError(r.Context(), a.log, w, apperr.New(apperr.CodeUnauthorized, "login required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *API) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		user, err := a.currentUser(r)
		if err != nil {
			writeError(ctx, a.log, w, err)
			return
		}
		if !user.IsAdmin {
			writeError(ctx, a.log, w, apperr.New(apperr.CodeForbidden, "admin only"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *API) setSessionCookie(w http.ResponseWriter, sess domain.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     a.cookie.Name,
		Value:    sess.Token,
		Path:     "/",
		MaxAge:   int(a.cookie.TTL.Seconds()),
		HttpOnly: true,
		Secure:   a.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
