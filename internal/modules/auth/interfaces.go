package auth

import (
	"context"
	"time"

	"github.com/baedyl/Loxea-api/internal/domain"
)

// UserStore is the slice of the user repository the auth service uses.
type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByExternalReference(ctx context.Context, ref string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	SaveResetCode(ctx context.Context, email string, code *string) error
	SetPassword(ctx context.Context, email string, hash []byte) error
}

// TokenStore holds the single active token slot per subject.
type TokenStore interface {
	GetBySubject(ctx context.Context, subject string) (*domain.TokenRecord, error)
	SavePair(ctx context.Context, subject, accessToken, refreshToken string) error
	SaveAccessToken(ctx context.Context, subject, accessToken string) error
}

// IdentificationReader checks sign-ups against the vehicle registry.
type IdentificationReader interface {
	GetByChassisAndPlate(ctx context.Context, chassis, plate string) (*domain.Identification, error)
}

// TokenIssuer signs and verifies bearer tokens.
type TokenIssuer interface {
	Generate(subject string, ttl time.Duration) (string, error)
	Subject(token string) (string, error)
}
