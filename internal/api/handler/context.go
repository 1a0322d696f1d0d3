package handler

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/flatfinder/flatfinder-api/internal/api/middleware"
	"github.com/flatfinder/flatfinder-api/internal/core/domain"
)

// normalizer is implemented by requests that clean their fields before
// validation.
type normalizer interface {
	normalize()
}

// bindAndValidate decodes the body into req and runs the struct validator.
// Both failures are reported as invalid input.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.InvalidInput("invalid payload")
	}
	if n, ok := req.(normalizer); ok {
		n.normalize()
	}
	if err := c.Validate(req); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return err
		}
		return domain.InvalidInput(err.Error())
	}
	return nil
}

// ctxActor returns the actor injected by the Auth middleware. The services
// reject an anonymous actor, so no check is needed here.
func ctxActor(c echo.Context) domain.Actor {
	return middleware.ActorFrom(c)
}

// ctxSession returns the session injected by the Auth middleware.
func ctxSession(c echo.Context) (domain.Session, error) {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		return domain.Session{}, domain.ErrAuthRequired
	}
	return s, nil
}
