package domain

import "github.com/google/uuid"

// Session is an anonymous browser session, optionally carrying a user identity.
type Session struct {
	Token  string
	UserID *uuid.UUID
}

func (s Session) Authenticated() bool {
	return s.UserID != nil && *s.UserID != uuid.Nil
}
