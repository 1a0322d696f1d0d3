package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/flatfinder/flatfinder-api/internal/api/middleware"
	"github.com/flatfinder/flatfinder-api/internal/core/domain"
)

// fixedResolver authenticates every request as the same actor.
type fixedResolver struct {
	actor domain.Actor
}

func (r fixedResolver) ResolveSession(context.Context, string) (*domain.Session, error) {
	return &domain.Session{Actor: r.actor, TokenID: "jti-test", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

type request struct {
	method string
	target string
	body   string
	params map[string]string
	actor  *domain.Actor
}

// serve runs h for req and returns the recorder and the handler error.
func serve(t *testing.T, h echo.HandlerFunc, req request) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	httpReq := httptest.NewRequest(req.method, req.target, strings.NewReader(req.body))
	if req.body != "" {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(httpReq, rec)
	if len(req.params) > 0 {
		names := make([]string, 0, len(req.params))
		values := make([]string, 0, len(req.params))
		for name, value := range req.params {
			names = append(names, name)
			values = append(values, value)
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}

	if req.actor != nil {
		h = middleware.Auth(fixedResolver{actor: *req.actor})(h)
	}
	return rec, h(c)
}

func asActor(id string) *domain.Actor { return &domain.Actor{ID: id} }

func asAdmin(id string) *domain.Actor { return &domain.Actor{ID: id, IsPrivileged: true} }
