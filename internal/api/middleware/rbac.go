package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/flatfinder/flatfinder-api/internal/core/authz"
	"github.com/flatfinder/flatfinder-api/internal/core/domain"
	"github.com/flatfinder/flatfinder-api/internal/pkg/metrics"
)

// Require gates a route on an actor-only rule, such as authz.CanListUsers.
// Rules that depend on the target entity are enforced by the services after
// the entity is loaded. Must run after Auth.
func Require(rule string, check func(domain.Actor) authz.Decision) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			d := check(ActorFrom(c))
			if !d.Allowed {
				metrics.AuthzDecisionsTotal.WithLabelValues(rule, "denied").Inc()
				return d.Err()
			}
			return next(c)
		}
	}
}
