package auth

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/baedyl/Loxea-api/internal/domain"
	"github.com/baedyl/Loxea-api/internal/pkg/httperr"
	jwtsvc "github.com/baedyl/Loxea-api/internal/pkg/jwt"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserStore) GetByExternalReference(ctx context.Context, ref string) (*domain.User, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserStore) SaveResetCode(ctx context.Context, email string, code *string) error {
	args := m.Called(ctx, email, code)
	return args.Error(0)
}

func (m *mockUserStore) SetPassword(ctx context.Context, email string, hash []byte) error {
	args := m.Called(ctx, email, hash)
	return args.Error(0)
}

type mockTokenStore struct {
	mock.Mock
}

func (m *mockTokenStore) GetBySubject(ctx context.Context, subject string) (*domain.TokenRecord, error) {
	args := m.Called(ctx, subject)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenRecord), args.Error(1)
}

func (m *mockTokenStore) SavePair(ctx context.Context, subject, accessToken, refreshToken string) error {
	args := m.Called(ctx, subject, accessToken, refreshToken)
	return args.Error(0)
}

func (m *mockTokenStore) SaveAccessToken(ctx context.Context, subject, accessToken string) error {
	args := m.Called(ctx, subject, accessToken)
	return args.Error(0)
}

type mockIdentReader struct {
	mock.Mock
}

func (m *mockIdentReader) GetByChassisAndPlate(ctx context.Context, chassis, plate string) (*domain.Identification, error) {
	args := m.Called(ctx, chassis, plate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identification), args.Error(1)
}

func newTestService(users *mockUserStore, tokens *mockTokenStore, idents *mockIdentReader) *Service {
	return NewService(users, tokens, idents, jwtsvc.New("test-secret-123"), time.Hour, 5*time.Hour)
}

func testUser(email, password string) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &domain.User{Name: "Test Driver", Email: email, Password: hash}
	u.ID = 1
	u.ExternalReference = "abc123ref"
	return u
}

func TestLogin_Success(t *testing.T) {
	users := new(mockUserStore)
	tokens := new(mockTokenStore)
	idents := new(mockIdentReader)
	svc := newTestService(users, tokens, idents)

	user := testUser("a@x.com", "pw")
	users.On("GetByEmail", mock.Anything, "a@x.com").Return(user, nil)
	tokens.On("SavePair", mock.Anything, "abc123ref", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.Login(context.Background(), "a@x.com", "pw")

	assert.NoError(t, err)
	assert.Equal(t, "a@x.com", result.User.Email)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.NotEqual(t, result.AccessToken, result.RefreshToken)
	tokens.AssertExpectations(t)
}

func TestLogin_UserNotFound(t *testing.T) {
	users := new(mockUserStore)
	svc := newTestService(users, new(mockTokenStore), new(mockIdentReader))

	users.On("GetByEmail", mock.Anything, "missing@x.com").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Login(context.Background(), "missing@x.com", "pw")

	var httpErr *httperr.Error
	assert.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.Status)
	assert.Equal(t, "User Not Found", httpErr.Title)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(mockUserStore)
	tokens := new(mockTokenStore)
	svc := newTestService(users, tokens, new(mockIdentReader))

	users.On("GetByEmail", mock.Anything, "a@x.com").Return(testUser("a@x.com", "pw"), nil)

	_, err := svc.Login(context.Background(), "a@x.com", "not-pw")

	var httpErr *httperr.Error
	assert.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "Incorrect password", httpErr.Title)
	tokens.AssertNotCalled(t, "SavePair", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSignUp_Success(t *testing.T) {
	users := new(mockUserStore)
	tokens := new(mockTokenStore)
	idents := new(mockIdentReader)
	svc := newTestService(users, tokens, idents)

	idents.On("GetByChassisAndPlate", mock.Anything, "VF1RFB00123456", "AB-123-CD").
		Return(&domain.Identification{ChassisNumber: "VF1RFB00123456", PlateNumber: "AB-123-CD"}, nil)
	users.On("ExistsByEmail", mock.Anything, "new@x.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "new@x.com" && u.Name == "New Driver" &&
			bcrypt.CompareHashAndPassword(u.Password, []byte("secret-pw")) == nil
	})).Return(nil)
	tokens.On("SavePair", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result, err := svc.SignUp(context.Background(), SignUpRequest{
		Name:          "New Driver",
		Email:         "new@x.com",
		ChassisNumber: "VF1RFB00123456",
		PlateNumber:   "AB-123-CD",
		Password:      "secret-pw",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	users.AssertExpectations(t)
}

func TestSignUp_UnknownIdentification(t *testing.T) {
	users := new(mockUserStore)
	idents := new(mockIdentReader)
	svc := newTestService(users, new(mockTokenStore), idents)

	idents.On("GetByChassisAndPlate", mock.Anything, "BAD", "AB-123-CD").
		Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.SignUp(context.Background(), SignUpRequest{
		Name:          "New Driver",
		Email:         "new@x.com",
		ChassisNumber: "BAD",
		PlateNumber:   "AB-123-CD",
		Password:      "secret-pw",
	})

	var httpErr *httperr.Error
	assert.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "Invalid chassis number", httpErr.Title)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRefresh_Success(t *testing.T) {
	users := new(mockUserStore)
	tokens := new(mockTokenStore)
	svc := newTestService(users, tokens, new(mockIdentReader))

	issuer := jwtsvc.New("test-secret-123")
	refresh, _ := issuer.Generate("abc123ref", time.Hour)

	tokens.On("GetBySubject", mock.Anything, "abc123ref").Return(&domain.TokenRecord{
		Subject:          "abc123ref",
		RefreshTokenHash: domain.TokenDigest(refresh),
	}, nil)
	users.On("GetByExternalReference", mock.Anything, "abc123ref").Return(testUser("a@x.com", "pw"), nil)
	tokens.On("SaveAccessToken", mock.Anything, "abc123ref", mock.Anything).Return(nil)

	access, err := svc.Refresh(context.Background(), refresh)

	assert.NoError(t, err)
	assert.NotEmpty(t, access)
	subject, err := issuer.Subject(access)
	assert.NoError(t, err)
	assert.Equal(t, "abc123ref", subject)
}

func TestRefresh_SupersededToken(t *testing.T) {
	tokens := new(mockTokenStore)
	svc := newTestService(new(mockUserStore), tokens, new(mockIdentReader))

	issuer := jwtsvc.New("test-secret-123")
	oldRefresh, _ := issuer.Generate("abc123ref", time.Hour)
	newRefresh, _ := issuer.Generate("abc123ref", 2*time.Hour)

	// Slot holds the newer token; the old one still verifies but must fail.
	tokens.On("GetBySubject", mock.Anything, "abc123ref").Return(&domain.TokenRecord{
		Subject:          "abc123ref",
		RefreshTokenHash: domain.TokenDigest(newRefresh),
	}, nil)

	_, err := svc.Refresh(context.Background(), oldRefresh)

	var httpErr *httperr.Error
	assert.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "Invalid Refresh Token", httpErr.Title)
	tokens.AssertNotCalled(t, "SaveAccessToken", mock.Anything, mock.Anything, mock.Anything)
}

func TestRefresh_DeletedUser(t *testing.T) {
	users := new(mockUserStore)
	tokens := new(mockTokenStore)
	svc := newTestService(users, tokens, new(mockIdentReader))

	issuer := jwtsvc.New("test-secret-123")
	refresh, _ := issuer.Generate("abc123ref", time.Hour)

	// The token row survives the user's soft delete; refreshing must fail
	// rather than keep minting access tokens for a gone account.
	tokens.On("GetBySubject", mock.Anything, "abc123ref").Return(&domain.TokenRecord{
		Subject:          "abc123ref",
		RefreshTokenHash: domain.TokenDigest(refresh),
	}, nil)
	users.On("GetByExternalReference", mock.Anything, "abc123ref").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Refresh(context.Background(), refresh)

	var httpErr *httperr.Error
	assert.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.Status)
	assert.Equal(t, "User Not Found", httpErr.Title)
	tokens.AssertNotCalled(t, "SaveAccessToken", mock.Anything, mock.Anything, mock.Anything)
}

func TestRefresh_GarbageToken(t *testing.T) {
	tokens := new(mockTokenStore)
	svc := newTestService(new(mockUserStore), tokens, new(mockIdentReader))

	_, err := svc.Refresh(context.Background(), "not-a-token")

	var httpErr *httperr.Error
	assert.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "Invalid Refresh Token", httpErr.Title)
	tokens.AssertNotCalled(t, "GetBySubject", mock.Anything, mock.Anything)
}

func TestRequestPasswordReset_GeneratesFiveDigits(t *testing.T) {
	users := new(mockUserStore)
	svc := newTestService(users, new(mockTokenStore), new(mockIdentReader))

	users.On("GetByEmail", mock.Anything, "a@x.com").Return(testUser("a@x.com", "pw"), nil)
	users.On("SaveResetCode", mock.Anything, "a@x.com", mock.Anything).Return(nil)

	code, err := svc.RequestPasswordReset(context.Background(), "a@x.com")

	assert.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\d{5}$`), code)
}

func TestValidateResetCode(t *testing.T) {
	users := new(mockUserStore)
	svc := newTestService(users, new(mockTokenStore), new(mockIdentReader))

	code := "04213"
	user := testUser("a@x.com", "pw")
	user.Code = &code
	users.On("GetByEmail", mock.Anything, "a@x.com").Return(user, nil)

	valid, err := svc.ValidateResetCode(context.Background(), "a@x.com", "04213")
	assert.NoError(t, err)
	assert.True(t, valid)

	valid, err = svc.ValidateResetCode(context.Background(), "a@x.com", "99999")
	assert.NoError(t, err)
	assert.False(t, valid)
}

func TestResetPassword_Success(t *testing.T) {
	users := new(mockUserStore)
	svc := newTestService(users, new(mockTokenStore), new(mockIdentReader))

	code := "04213"
	user := testUser("a@x.com", "pw")
	user.Code = &code
	users.On("GetByEmail", mock.Anything, "a@x.com").Return(user, nil)
	users.On("SetPassword", mock.Anything, "a@x.com", mock.MatchedBy(func(hash []byte) bool {
		return bcrypt.CompareHashAndPassword(hash, []byte("new-pw")) == nil
	})).Return(nil)

	err := svc.ResetPassword(context.Background(), "a@x.com", "04213", "new-pw")

	assert.NoError(t, err)
	users.AssertExpectations(t)
}

func TestResetPassword_WrongCode(t *testing.T) {
	users := new(mockUserStore)
	svc := newTestService(users, new(mockTokenStore), new(mockIdentReader))

	code := "04213"
	user := testUser("a@x.com", "pw")
	user.Code = &code
	users.On("GetByEmail", mock.Anything, "a@x.com").Return(user, nil)

	err := svc.ResetPassword(context.Background(), "a@x.com", "11111", "new-pw")

	var httpErr *httperr.Error
	assert.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "Invalid reset code", httpErr.Title)
	users.AssertNotCalled(t, "SetPassword", mock.Anything, mock.Anything, mock.Anything)
}
