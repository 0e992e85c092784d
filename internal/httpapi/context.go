package httpapi

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

type contextKey string

const ctxSession contextKey = "session"

func withSession(ctx context.Context, sess domain.Session) context.Context {
	return context.WithValue(ctx, ctxSession, sess)
}

// sessionFromContext is set by the session middleware for every /api route.
func sessionFromContext(ctx context.Context) (domain.Session, bool) {
	sess, ok := ctx.Value(ctxSession).(domain.Session)
	return sess, ok && sess.Token != ""
}
