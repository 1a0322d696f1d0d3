package ports

import (
	"context"
	"time"

	"github.com/flatfinder/flatfinder-api/internal/core/domain"
)

// RegisterInput is the data accepted when an account is created. There is no
// privilege flag: privilege is granted by configuration, never by the caller.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	BirthDate *time.Time
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Logout(ctx context.Context, session domain.Session) error
}
