package mocks

import (
	"context"
	"time"

	"docconnect/internal/domain/entity"
	"docconnect/internal/infrastructure/oauth"
	"docconnect/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type TokenStore struct {
	mock.Mock
}

func (m *TokenStore) StoreAccessToken(ctx context.Context, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	return m.Called(ctx, userID, tokenID, ttl).Error(0)
}

func (m *TokenStore) StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	return m.Called(ctx, userID, tokenID, ttl).Error(0)
}

func (m *TokenStore) AccessTokenExists(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error) {
	args := m.Called(ctx, userID, tokenID)
	return args.Bool(0), args.Error(1)
}

func (m *TokenStore) ConsumeRefreshToken(ctx context.Context, userID uuid.UUID, tokenID string) error {
	return m.Called(ctx, userID, tokenID).Error(0)
}

func (m *TokenStore) RevokeTokens(ctx context.Context, userID uuid.UUID, accessTokenID, refreshTokenID string) error {
	return m.Called(ctx, userID, accessTokenID, refreshTokenID).Error(0)
}

func (m *TokenStore) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *TokenStore) SaveEmailVerificationToken(ctx context.Context, token string, identityID uuid.UUID, ttl time.Duration) error {
	return m.Called(ctx, token, identityID, ttl).Error(0)
}

func (m *TokenStore) ConsumeEmailVerificationToken(ctx context.Context, token string) (uuid.UUID, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *TokenStore) SaveOAuthState(ctx context.Context, state string, ttl time.Duration) error {
	return m.Called(ctx, state, ttl).Error(0)
}

func (m *TokenStore) ConsumeOAuthState(ctx context.Context, state string) error {
	return m.Called(ctx, state).Error(0)
}

type AuditService struct {
	mock.Mock
}

func (m *AuditService) LogCreate(ctx context.Context, userID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error {
	return m.Called(ctx, userID, action, entityName, entityID, newValue).Error(0)
}

func (m *AuditService) LogUpdate(ctx context.Context, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return m.Called(ctx, userID, action, entityName, entityID, oldValue, newValue).Error(0)
}

func (m *AuditService) LogEvent(ctx context.Context, userID *uuid.UUID, action string, metadata entity.JSON) error {
	return m.Called(ctx, userID, action, metadata).Error(0)
}

type LicenseUploader struct {
	mock.Mock
}

func (m *LicenseUploader) Enqueue(job service.LicenseUploadJob) error {
	return m.Called(job).Error(0)
}

type Summarizer struct {
	mock.Mock
}

func (m *Summarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	args := m.Called(ctx, transcript)
	return args.String(0), args.Error(1)
}

type OAuthProvider struct {
	mock.Mock
}

func (m *OAuthProvider) AuthCodeURL(state string) (string, error) {
	args := m.Called(state)
	return args.String(0), args.Error(1)
}

func (m *OAuthProvider) Exchange(ctx context.Context, code string) (*oauth.FederatedUser, error) {
	args := m.Called(ctx, code)
	if v := args.Get(0); v != nil {
		return v.(*oauth.FederatedUser), args.Error(1)
	}
	return nil, args.Error(1)
}

type Mailer struct {
	mock.Mock
}

func (m *Mailer) SendVerificationEmail(ctx context.Context, to, token string) error {
	return m.Called(ctx, to, token).Error(0)
}
