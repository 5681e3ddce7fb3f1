package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// Service signs and verifies the HS256 bearer tokens. The claim set is
// small: subject (the user's external reference), expiry, and a per-token
// uuid. Access and refresh tokens share the same structure and differ only
// in TTL and in which store slot they are checked against.
type Service struct {
	secret []byte
}

type claims struct {
	jwtlib.RegisteredClaims
}

func New(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

// Generate signs a token for the subject expiring after ttl. Every call
// mints a distinct token: the ID claim is a fresh uuid, so two logins in
// the same second still produce different digests and the stored slot can
// tell them apart.
func (s *Service) Generate(subject string, ttl time.Duration) (string, error) {
	c := claims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(time.Now()),
			ID:        uuid.NewString(),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c)
	return token.SignedString(s.secret)
}

// Subject verifies signature and expiry and returns the token's subject.
// Verification fails closed: malformed, forged or expired tokens all come
// back as ErrInvalidToken, never a partial result.
func (s *Service) Subject(tokenStr string) (string, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &claims{}, func(t *jwtlib.Token) (any, error) {
		if t.Method != jwtlib.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	c, ok := token.Claims.(*claims)
	if !ok || c.Subject == "" {
		return "", ErrInvalidToken
	}
	return c.Subject, nil
}
