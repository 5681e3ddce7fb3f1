package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/baedyl/Loxea-api/internal/domain"
	"github.com/baedyl/Loxea-api/internal/pkg/httperr"
	"github.com/baedyl/Loxea-api/internal/pkg/response"
)

const currentUserKey = "currentUser"

// SubjectVerifier parses a signed token and returns its subject.
type SubjectVerifier interface {
	Subject(token string) (string, error)
}

// TokenRecordReader loads the persisted token slot for a subject.
type TokenRecordReader interface {
	GetBySubject(ctx context.Context, subject string) (*domain.TokenRecord, error)
}

// UserReader resolves a user by external reference.
type UserReader interface {
	GetByExternalReference(ctx context.Context, ref string) (*domain.User, error)
}

// Authorization gates every route marked protected in the policy. The
// presented access token must be well formed, signed, unexpired, and must
// match the single persisted access slot for its subject; a token
// superseded by a newer login fails the slot check and is rejected.
func Authorization(policy *RoutePolicy, tokens SubjectVerifier, records TokenRecordReader, users UserReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !policy.RequiresAuth(c.Request.Method, c.FullPath()) {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, httperr.MissingAuthorization())
			return
		}
		raw := parts[1]

		subject, err := tokens.Subject(raw)
		if err != nil {
			response.Error(c, httperr.InvalidAccessToken())
			return
		}

		record, err := records.GetBySubject(c.Request.Context(), subject)
		if err != nil || record == nil || !record.MatchesAccess(raw) {
			response.Error(c, httperr.InvalidAccessToken())
			return
		}

		// Token and slot agree but the subject no longer resolves to a
		// live user, typically after a back-office delete.
		user, err := users.GetByExternalReference(c.Request.Context(), subject)
		if err != nil || user == nil {
			response.Error(c, httperr.Unauthorized())
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user stashed by the gate.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}
