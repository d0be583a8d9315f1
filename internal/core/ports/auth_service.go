package ports

import (
	"context"

	"github.com/paintcompare/marketplace-api/internal/core/domain"
)

// AuthService is the login/registration surface consumed by the HTTP layer.
// Both operations return a signed session token alongside the user record.
type AuthService interface {
	Register(ctx context.Context, email, password, name, phone string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// LoginThrottle bounds the rate of failed login attempts per email.
type LoginThrottle interface {
	TooManyFailures(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// ActivitySink accepts successful-login events for asynchronous processing
// (lastLoginAt update plus audit record). Enqueue must not block the request.
type ActivitySink interface {
	Enqueue(activity domain.LoginActivity)
}

// ActivityRecorder persists login activity entries.
type ActivityRecorder interface {
	Record(ctx context.Context, activity domain.LoginActivity) error
}
