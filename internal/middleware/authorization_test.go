package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/baedyl/Loxea-api/internal/domain"
	"github.com/baedyl/Loxea-api/internal/pkg/jwt"
)

type stubTokenRecords struct {
	records map[string]*domain.TokenRecord
}

func (s *stubTokenRecords) GetBySubject(_ context.Context, subject string) (*domain.TokenRecord, error) {
	return s.records[subject], nil
}

type stubUsers struct {
	users map[string]*domain.User
}

func (s *stubUsers) GetByExternalReference(_ context.Context, ref string) (*domain.User, error) {
	if u, ok := s.users[ref]; ok {
		return u, nil
	}
	return nil, nil
}

func newGateRouter(issuer *jwt.Service, records *stubTokenRecords, users *stubUsers) *gin.Engine {
	gin.SetMode(gin.TestMode)

	policy := NewRoutePolicy()
	policy.Protect(http.MethodGet, "/protected")

	r := gin.New()
	r.Use(Authorization(policy, issuer, records, users))
	r.GET("/protected", func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"email": user.Email})
	})
	r.GET("/open", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func issueAndStore(t *testing.T, issuer *jwt.Service, records *stubTokenRecords, subject string, ttl time.Duration) string {
	t.Helper()
	token, err := issuer.Generate(subject, ttl)
	assert.NoError(t, err)
	records.records[subject] = &domain.TokenRecord{
		Subject:         subject,
		AccessTokenHash: domain.TokenDigest(token),
	}
	return token
}

func TestAuthorization_ValidToken(t *testing.T) {
	issuer := jwt.New("test-secret-123")
	records := &stubTokenRecords{records: map[string]*domain.TokenRecord{}}
	user := &domain.User{Email: "a@x.com"}
	user.ExternalReference = "ref1"
	users := &stubUsers{users: map[string]*domain.User{"ref1": user}}
	router := newGateRouter(issuer, records, users)

	token := issueAndStore(t, issuer, records, "ref1", time.Hour)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "a@x.com")
}

func TestAuthorization_MissingHeader(t *testing.T) {
	issuer := jwt.New("test-secret-123")
	records := &stubTokenRecords{records: map[string]*domain.TokenRecord{}}
	users := &stubUsers{users: map[string]*domain.User{}}
	router := newGateRouter(issuer, records, users)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Unauthorized Access")
	assert.Contains(t, w.Body.String(), "Authorization missing")
}

func TestAuthorization_MalformedHeader(t *testing.T) {
	issuer := jwt.New("test-secret-123")
	records := &stubTokenRecords{records: map[string]*domain.TokenRecord{}}
	users := &stubUsers{users: map[string]*domain.User{}}
	router := newGateRouter(issuer, records, users)

	for _, header := range []string{"Bearer", "Bearer a b", "Basic abc"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuthorization_ForgedToken(t *testing.T) {
	issuer := jwt.New("test-secret-123")
	records := &stubTokenRecords{records: map[string]*domain.TokenRecord{}}
	users := &stubUsers{users: map[string]*domain.User{}}
	router := newGateRouter(issuer, records, users)

	forged, _ := jwt.New("other-secret").Generate("ref1", time.Hour)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Access Token Invalid")
}

func TestAuthorization_SupersededToken(t *testing.T) {
	issuer := jwt.New("test-secret-123")
	records := &stubTokenRecords{records: map[string]*domain.TokenRecord{}}
	user := &domain.User{Email: "a@x.com"}
	user.ExternalReference = "ref1"
	users := &stubUsers{users: map[string]*domain.User{"ref1": user}}
	router := newGateRouter(issuer, records, users)

	first := issueAndStore(t, issuer, records, "ref1", time.Hour)
	// Second login overwrites the slot; the first token still verifies
	// cryptographically but no longer matches.
	issueAndStore(t, issuer, records, "ref1", 2*time.Hour)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+first)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Access Token Invalid")
}

func TestAuthorization_DeletedUser(t *testing.T) {
	issuer := jwt.New("test-secret-123")
	records := &stubTokenRecords{records: map[string]*domain.TokenRecord{}}
	users := &stubUsers{users: map[string]*domain.User{}}
	router := newGateRouter(issuer, records, users)

	// The slot still matches but the subject has no user row left.
	token := issueAndStore(t, issuer, records, "ref1", time.Hour)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Unauthorized Access")
	assert.Contains(t, w.Body.String(), "The user requesting this resource is not authorized")
}

func TestAuthorization_UnmarkedRouteSkipsGate(t *testing.T) {
	issuer := jwt.New("test-secret-123")
	records := &stubTokenRecords{records: map[string]*domain.TokenRecord{}}
	users := &stubUsers{users: map[string]*domain.User{}}
	router := newGateRouter(issuer, records, users)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoutePolicy(t *testing.T) {
	policy := NewRoutePolicy()
	policy.Protect(http.MethodPost, "/api/request-assistance")

	assert.True(t, policy.RequiresAuth(http.MethodPost, "/api/request-assistance"))
	assert.False(t, policy.RequiresAuth(http.MethodGet, "/api/request-assistance"))
	assert.False(t, policy.RequiresAuth(http.MethodPost, "/api/login"))
	// Unmatched requests carry an empty template and fall through to 404.
	assert.False(t, policy.RequiresAuth(http.MethodPost, ""))
}
