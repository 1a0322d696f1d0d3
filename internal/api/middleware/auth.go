package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/flatfinder/flatfinder-api/internal/core/domain"
)

const (
	ctxKeyActor   = "actor"
	ctxKeySession = "session"
)

// SessionResolver turns an Authorization header into a verified session.
type SessionResolver interface {
	ResolveSession(ctx context.Context, header string) (*domain.Session, error)
}

// Auth resolves the bearer token and stores the actor and its session on the
// context. Resolution failures are returned as Unauthenticated errors and
// rendered by the API error handler.
func Auth(resolver SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, err := resolver.ResolveSession(c.Request().Context(), c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return err
			}

			c.Set(ctxKeyActor, session.Actor)
			c.Set(ctxKeySession, *session)
			return next(c)
		}
	}
}

// ActorFrom returns the actor stored by Auth. The zero Actor is returned on
// routes without Auth, and every rule denies it.
func ActorFrom(c echo.Context) domain.Actor {
	a, _ := c.Get(ctxKeyActor).(domain.Actor)
	return a
}

// SessionFrom returns the session stored by Auth.
func SessionFrom(c echo.Context) (domain.Session, bool) {
	s, ok := c.Get(ctxKeySession).(domain.Session)
	return s, ok
}
