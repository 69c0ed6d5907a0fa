package usecase

import (
	"context"
	"testing"
	"time"

	"docconnect/config"
	"docconnect/internal/delivery/dto"
	"docconnect/internal/domain/entity"
	"docconnect/internal/domain/repository"
	"docconnect/internal/infrastructure/monitoring"
	"docconnect/internal/infrastructure/oauth"
	"docconnect/internal/mocks"
	"docconnect/internal/service"
	"docconnect/pkg/jwt"
	"docconnect/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type authFixture struct {
	identities *mocks.IdentityRepository
	users      *mocks.UserProfileRepository
	tokens     *mocks.TokenStore
	mailer     *mocks.Mailer
	google     *mocks.OAuthProvider
	audit      *mocks.AuditService
	jwt        *jwt.JWTService
}

func newAuthFixture(t *testing.T) (*authFixture, AuthUsecase) {
	t.Helper()
	f := &authFixture{
		identities: &mocks.IdentityRepository{},
		users:      &mocks.UserProfileRepository{},
		tokens:     &mocks.TokenStore{},
		mailer:     &mocks.Mailer{},
		google:     &mocks.OAuthProvider{},
		audit:      &mocks.AuditService{},
		jwt: jwt.NewJWTService(config.JWTConfig{
			Secret:        "test-secret",
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: time.Hour,
		}),
	}
	cfg := config.AuthConfig{RequireEmailVerification: true, EmailTokenExpiry: 24 * time.Hour}
	uc := NewAuthUsecase(logger.Discard(), cfg, f.identities, f.users, f.jwt, f.tokens, f.mailer, f.google, f.audit, monitoring.NewMetrics())
	return f, uc
}

func (f *authFixture) expectTokens() {
	f.tokens.On("StoreAccessToken", mock.Anything, mock.Anything, mock.Anything, 15*time.Minute).Return(nil)
	f.tokens.On("StoreRefreshToken", mock.Anything, mock.Anything, mock.Anything, time.Hour).Return(nil)
}

func TestAuthSignup(t *testing.T) {
	f, uc := newAuthFixture(t)
	f.identities.On("Create", mock.Anything, mock.MatchedBy(func(i *entity.Identity) bool {
		return i.Email == "new@example.com" && i.SignInMethod == entity.SignInMethodPassword && !i.EmailVerified
	})).Return(nil)
	f.audit.On("LogEvent", mock.Anything, mock.Anything, entity.AuditActionIdentitySignup, mock.Anything).Return(nil)
	f.tokens.On("SaveEmailVerificationToken", mock.Anything, mock.Anything, mock.Anything, 24*time.Hour).Return(nil)
	f.mailer.On("SendVerificationEmail", mock.Anything, "new@example.com", mock.Anything).Return(nil)
	f.expectTokens()

	resp, err := uc.Signup(context.Background(), &dto.SignupRequest{Email: " New@Example.com ", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", resp.Identity.Email)
	assert.False(t, resp.Identity.EmailVerified)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.NotEmpty(t, resp.Tokens.RefreshToken)
	f.mailer.AssertExpectations(t)
}

func TestAuthSignup_DuplicateEmail(t *testing.T) {
	f, uc := newAuthFixture(t)
	f.identities.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	_, err := uc.Signup(context.Background(), &dto.SignupRequest{Email: "dup@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestAuthLogin(t *testing.T) {
	f, uc := newAuthFixture(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	identity := &entity.Identity{ID: uuid.New(), Email: "a@example.com", PasswordHash: string(hash), SignInMethod: entity.SignInMethodPassword}
	f.identities.On("FindByEmail", mock.Anything, "a@example.com").Return(identity, nil)
	f.expectTokens()

	resp, err := uc.Login(context.Background(), &dto.LoginRequest{Email: "A@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, identity.ID, resp.Identity.ID)

	_, err = uc.Login(context.Background(), &dto.LoginRequest{Email: "a@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthLogin_FederatedIdentityCannotUsePassword(t *testing.T) {
	f, uc := newAuthFixture(t)
	f.identities.On("FindByEmail", mock.Anything, "g@example.com").Return(&entity.Identity{ID: uuid.New(), SignInMethod: entity.SignInMethodGoogle}, nil)

	_, err := uc.Login(context.Background(), &dto.LoginRequest{Email: "g@example.com", Password: "whatever1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthGoogleStart_NotConfigured(t *testing.T) {
	f, uc := newAuthFixture(t)
	f.google.On("AuthCodeURL", mock.Anything).Return("", oauth.ErrNotConfigured)

	_, err := uc.GoogleStart(context.Background())
	assert.ErrorIs(t, err, ErrOAuthUnavailable)
}

func TestAuthGoogleCallback_CreatesIdentity(t *testing.T) {
	f, uc := newAuthFixture(t)
	f.tokens.On("ConsumeOAuthState", mock.Anything, "state-1").Return(nil)
	f.google.On("Exchange", mock.Anything, "code-1").Return(&oauth.FederatedUser{
		Subject: "sub-1", Email: "G@example.com", GivenName: "Gia", FamilyName: "Rao",
	}, nil)
	f.identities.On("FindByProviderSubject", mock.Anything, entity.SignInMethodGoogle, "sub-1").Return(nil, nil)
	f.identities.On("FindByEmail", mock.Anything, "g@example.com").Return(nil, nil)
	f.identities.On("Create", mock.Anything, mock.MatchedBy(func(i *entity.Identity) bool {
		return i.EmailVerified && i.ProviderSubject == "sub-1"
	})).Return(nil)
	f.audit.On("LogEvent", mock.Anything, mock.Anything, entity.AuditActionIdentitySignup, mock.Anything).Return(nil)
	f.users.On("Merge", mock.Anything, mock.Anything, repository.Fields{
		entity.FieldFirstName: "Gia",
		entity.FieldLastName:  "Rao",
		entity.FieldEmail:     "g@example.com",
	}).Return(nil)
	f.expectTokens()

	resp, err := uc.GoogleCallback(context.Background(), &dto.GoogleCallbackRequest{Code: "code-1", State: "state-1"})
	require.NoError(t, err)
	assert.Equal(t, string(entity.SignInMethodGoogle), resp.Identity.SignInMethod)
	assert.True(t, resp.Identity.EmailVerified)
	f.users.AssertExpectations(t)
}

func TestAuthGoogleCallback_InvalidState(t *testing.T) {
	f, uc := newAuthFixture(t)
	f.tokens.On("ConsumeOAuthState", mock.Anything, "stale").Return(service.ErrTokenNotFound)

	_, err := uc.GoogleCallback(context.Background(), &dto.GoogleCallbackRequest{Code: "c", State: "stale"})
	assert.ErrorIs(t, err, ErrInvalidOAuthState)
	f.google.AssertNotCalled(t, "Exchange", mock.Anything, mock.Anything)
}

func TestAuthRefreshToken_SingleUse(t *testing.T) {
	f, uc := newAuthFixture(t)
	userID := uuid.New()
	refresh, tokenID, err := f.jwt.GenerateRefreshToken(userID, "a@example.com", "password")
	require.NoError(t, err)

	f.tokens.On("ConsumeRefreshToken", mock.Anything, userID, tokenID).Return(nil).Once()
	f.expectTokens()
	resp, err := uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: refresh})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	f.tokens.On("ConsumeRefreshToken", mock.Anything, userID, tokenID).Return(service.ErrTokenNotFound).Once()
	_, err = uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: refresh})
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestAuthRefreshToken_RejectsAccessToken(t *testing.T) {
	f, uc := newAuthFixture(t)
	access, _, err := f.jwt.GenerateAccessToken(uuid.New(), "a@example.com", "password")
	require.NoError(t, err)

	_, err = uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: access})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthLogout_RevokesBothTokens(t *testing.T) {
	f, uc := newAuthFixture(t)
	userID := uuid.New()
	refresh, refreshID, err := f.jwt.GenerateRefreshToken(userID, "a@example.com", "password")
	require.NoError(t, err)

	f.tokens.On("RevokeTokens", mock.Anything, userID, "access-1", refreshID).Return(nil)

	assert.NoError(t, uc.Logout(context.Background(), userID, "access-1", refresh))
	f.tokens.AssertExpectations(t)
}

func TestAuthConfirmEmail(t *testing.T) {
	f, uc := newAuthFixture(t)
	id := uuid.New()
	f.tokens.On("ConsumeEmailVerificationToken", mock.Anything, "tok").Return(id, nil)
	f.identities.On("MarkEmailVerified", mock.Anything, id).Return(nil)
	f.identities.On("FindByID", mock.Anything, id).Return(&entity.Identity{ID: id, Email: "a@example.com", EmailVerified: true}, nil)
	f.audit.On("LogEvent", mock.Anything, mock.Anything, entity.AuditActionIdentityEmailConfirm, mock.Anything).Return(nil)

	resp, err := uc.ConfirmEmail(context.Background(), &dto.ConfirmEmailRequest{Token: "tok"})
	require.NoError(t, err)
	assert.True(t, resp.EmailVerified)

	f.tokens.On("ConsumeEmailVerificationToken", mock.Anything, "used").Return(uuid.Nil, service.ErrTokenNotFound)
	_, err = uc.ConfirmEmail(context.Background(), &dto.ConfirmEmailRequest{Token: "used"})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthResendVerification_AlreadyVerified(t *testing.T) {
	f, uc := newAuthFixture(t)
	id := uuid.New()
	f.identities.On("FindByID", mock.Anything, id).Return(&entity.Identity{ID: id, SignInMethod: entity.SignInMethodPassword, EmailVerified: true}, nil)

	assert.ErrorIs(t, uc.ResendVerificationEmail(context.Background(), id), ErrEmailAlreadyVerified)
	f.mailer.AssertNotCalled(t, "SendVerificationEmail", mock.Anything, mock.Anything, mock.Anything)
}
