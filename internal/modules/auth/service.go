package auth

import (
	"context"
	"errors"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/baedyl/Loxea-api/internal/domain"
	"github.com/baedyl/Loxea-api/internal/pkg/httperr"
)

// Service holds the login, signup, refresh and password-reset flows.
type Service struct {
	users      UserStore
	tokens     TokenStore
	idents     IdentificationReader
	issuer     TokenIssuer
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewService(users UserStore, tokens TokenStore, idents IdentificationReader, issuer TokenIssuer, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		users:      users,
		tokens:     tokens,
		idents:     idents,
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// LoginResult carries the issued pair plus the identity it belongs to.
type LoginResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.UserNotFound(email)
		}
		return nil, httperr.ServerError(err)
	}

	if bcrypt.CompareHashAndPassword(user.Password, []byte(password)) != nil {
		return nil, httperr.InvalidCredentials()
	}

	return s.issuePair(ctx, user)
}

func (s *Service) SignUp(ctx context.Context, req SignUpRequest) (*LoginResult, error) {
	if _, err := s.idents.GetByChassisAndPlate(ctx, req.ChassisNumber, req.PlateNumber); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.InvalidIdentification(req.ChassisNumber)
		}
		return nil, httperr.ServerError(err)
	}

	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, httperr.ServerError(err)
	}
	if exists {
		return nil, httperr.EmailTaken(req.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, httperr.ServerError(err)
	}

	user := &domain.User{
		Name:     req.Name,
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, httperr.ServerError(err)
	}

	return s.issuePair(ctx, user)
}

// Refresh verifies the presented refresh token against both its signature
// and the persisted refresh slot, confirms the subject still resolves to a
// live user, then rotates the access slot only.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	subject, err := s.issuer.Subject(refreshToken)
	if err != nil {
		return "", httperr.InvalidRefreshToken()
	}

	record, err := s.tokens.GetBySubject(ctx, subject)
	if err != nil {
		return "", httperr.ServerError(err)
	}
	if record == nil || !record.MatchesRefresh(refreshToken) {
		return "", httperr.InvalidRefreshToken()
	}

	// A deleted user may still have a token row; the slot alone is not
	// enough to keep minting access tokens.
	if _, err := s.users.GetByExternalReference(ctx, subject); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", httperr.UserNotFoundForToken()
		}
		return "", httperr.ServerError(err)
	}

	access, err := s.issuer.Generate(subject, s.accessTTL)
	if err != nil {
		return "", httperr.ServerError(err)
	}
	if err := s.tokens.SaveAccessToken(ctx, subject, access); err != nil {
		return "", httperr.ServerError(err)
	}
	return access, nil
}

// RequestPasswordReset stores a fresh 5-digit code on the user record and
// returns it. Delivery to the user happens out of band.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", httperr.UserNotFound(email)
		}
		return "", httperr.ServerError(err)
	}

	code := generateResetCode()
	if err := s.users.SaveResetCode(ctx, email, &code); err != nil {
		return "", httperr.ServerError(err)
	}
	return code, nil
}

func (s *Service) ValidateResetCode(ctx context.Context, email, code string) (bool, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, httperr.UserNotFound(email)
		}
		return false, httperr.ServerError(err)
	}
	return user.Code != nil && *user.Code == code, nil
}

func (s *Service) ResetPassword(ctx context.Context, email, code, password string) error {
	valid, err := s.ValidateResetCode(ctx, email, code)
	if err != nil {
		return err
	}
	if !valid {
		return httperr.InvalidResetCode()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return httperr.ServerError(err)
	}
	// SetPassword also clears the stored code.
	if err := s.users.SetPassword(ctx, email, hash); err != nil {
		return httperr.ServerError(err)
	}
	return nil
}

func (s *Service) issuePair(ctx context.Context, user *domain.User) (*LoginResult, error) {
	access, err := s.issuer.Generate(user.ExternalReference, s.accessTTL)
	if err != nil {
		return nil, httperr.ServerError(err)
	}
	refresh, err := s.issuer.Generate(user.ExternalReference, s.refreshTTL)
	if err != nil {
		return nil, httperr.ServerError(err)
	}

	// Overwrites any prior slot for this subject, which is what ends the
	// previous session.
	if err := s.tokens.SavePair(ctx, user.ExternalReference, access, refresh); err != nil {
		return nil, httperr.ServerError(err)
	}

	return &LoginResult{User: user, AccessToken: access, RefreshToken: refresh}, nil
}

// generateResetCode draws each digit independently, so leading zeros and
// repeated codes are possible.
func generateResetCode() string {
	var b strings.Builder
	for i := 0; i < 5; i++ {
		b.WriteString(strconv.Itoa(rand.Intn(10)))
	}
	return b.String()
}
