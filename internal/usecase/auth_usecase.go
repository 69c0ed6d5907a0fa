package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"docconnect/config"
	"docconnect/internal/converter"
	"docconnect/internal/delivery/dto"
	"docconnect/internal/domain/entity"
	"docconnect/internal/domain/repository"
	"docconnect/internal/infrastructure/mailer"
	"docconnect/internal/infrastructure/monitoring"
	"docconnect/internal/infrastructure/oauth"
	"docconnect/internal/service"
	"docconnect/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyExists   = errors.New("email already exists")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrTokenRevoked         = errors.New("token has been revoked")
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailAlreadyVerified = errors.New("email already verified")
	ErrInvalidOAuthState    = errors.New("invalid or expired sign-in state")
	ErrOAuthUnavailable     = errors.New("google sign-in is not configured")
	ErrOAuthExchange        = errors.New("google sign-in failed")
	ErrSignInMethodMismatch = errors.New("account uses a different sign-in method")
)

const oauthStateTTL = 10 * time.Minute

type AuthUsecase interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	GoogleStart(ctx context.Context) (*dto.GoogleStartResponse, error)
	GoogleCallback(ctx context.Context, req *dto.GoogleCallbackRequest) (*dto.AuthResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID uuid.UUID, accessTokenID, refreshToken string) error
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.CurrentUserResponse, error)
	ResendVerificationEmail(ctx context.Context, userID uuid.UUID) error
	ConfirmEmail(ctx context.Context, req *dto.ConfirmEmailRequest) (*dto.IdentityResponse, error)
}

type authUsecase struct {
	log          *logrus.Logger
	cfg          config.AuthConfig
	identityRepo repository.IdentityRepository
	userRepo     repository.UserProfileRepository
	jwtService   *jwt.JWTService
	tokenStore   service.TokenStore
	mailer       mailer.Mailer
	google       oauth.Provider
	auditService service.AuditService
	metrics      *monitoring.Metrics
}

func NewAuthUsecase(
	log *logrus.Logger,
	cfg config.AuthConfig,
	identityRepo repository.IdentityRepository,
	userRepo repository.UserProfileRepository,
	jwtService *jwt.JWTService,
	tokenStore service.TokenStore,
	mailer mailer.Mailer,
	google oauth.Provider,
	auditService service.AuditService,
	metrics *monitoring.Metrics,
) AuthUsecase {
	return &authUsecase{
		log:          log,
		cfg:          cfg,
		identityRepo: identityRepo,
		userRepo:     userRepo,
		jwtService:   jwtService,
		tokenStore:   tokenStore,
		mailer:       mailer,
		google:       google,
		auditService: auditService,
		metrics:      metrics,
	}
}

func (u *authUsecase) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	identity := &entity.Identity{
		ID:           uuid.New(),
		Email:        normalizeEmail(req.Email),
		PasswordHash: string(hashedPassword),
		SignInMethod: entity.SignInMethodPassword,
	}

	if err := u.identityRepo.Create(ctx, identity); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			u.metrics.RecordAuthAttempt(string(entity.SignInMethodPassword), "duplicate")
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create identity: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogEvent(ctx, &identity.ID, entity.AuditActionIdentitySignup, entity.JSON{
		"sign_in_method": identity.SignInMethod,
	}); err != nil {
		u.log.Warnf("Failed to audit signup: %+v", err)
	}

	if err := u.sendVerification(ctx, identity); err != nil {
		// The identity exists; the user can ask for another email.
		u.log.Warnf("Failed to send verification email: %+v", err)
	}

	return u.authenticate(ctx, identity)
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	identity, err := u.identityRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		u.log.Warnf("Failed to find identity by email: %+v", err)
		return nil, err
	}
	if identity == nil || identity.SignInMethod != entity.SignInMethodPassword {
		u.metrics.RecordAuthAttempt(string(entity.SignInMethodPassword), "failure")
		return nil, ErrInvalidCredentials
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(req.Password)); err != nil {
		u.metrics.RecordAuthAttempt(string(entity.SignInMethodPassword), "failure")
		return nil, ErrInvalidCredentials
	}

	return u.authenticate(ctx, identity)
}

func (u *authUsecase) GoogleStart(ctx context.Context) (*dto.GoogleStartResponse, error) {
	state := uuid.NewString()
	authURL, err := u.google.AuthCodeURL(state)
	if err != nil {
		if errors.Is(err, oauth.ErrNotConfigured) {
			return nil, ErrOAuthUnavailable
		}
		return nil, err
	}

	if err := u.tokenStore.SaveOAuthState(ctx, state, oauthStateTTL); err != nil {
		u.log.Warnf("Failed to store oauth state: %+v", err)
		return nil, err
	}

	return &dto.GoogleStartResponse{AuthURL: authURL}, nil
}

func (u *authUsecase) GoogleCallback(ctx context.Context, req *dto.GoogleCallbackRequest) (*dto.AuthResponse, error) {
	if err := u.tokenStore.ConsumeOAuthState(ctx, req.State); err != nil {
		if errors.Is(err, service.ErrTokenNotFound) {
			return nil, ErrInvalidOAuthState
		}
		u.log.Warnf("Failed to consume oauth state: %+v", err)
		return nil, err
	}

	federated, err := u.google.Exchange(ctx, req.Code)
	if err != nil {
		u.metrics.RecordAuthAttempt(string(entity.SignInMethodGoogle), "failure")
		if errors.Is(err, oauth.ErrNotConfigured) {
			return nil, ErrOAuthUnavailable
		}
		u.log.Warnf("Failed to exchange google code: %+v", err)
		return nil, ErrOAuthExchange
	}

	identity, err := u.identityRepo.FindByProviderSubject(ctx, entity.SignInMethodGoogle, federated.Subject)
	if err != nil {
		u.log.Warnf("Failed to find federated identity: %+v", err)
		return nil, err
	}

	if identity == nil {
		identity, err = u.createFederatedIdentity(ctx, federated)
		if err != nil {
			return nil, err
		}
	}

	return u.authenticate(ctx, identity)
}

func (u *authUsecase) createFederatedIdentity(ctx context.Context, federated *oauth.FederatedUser) (*entity.Identity, error) {
	email := normalizeEmail(federated.Email)

	existing, err := u.identityRepo.FindByEmail(ctx, email)
	if err != nil {
		u.log.Warnf("Failed to find identity by email: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrSignInMethodMismatch
	}

	identity := &entity.Identity{
		ID:              uuid.New(),
		Email:           email,
		SignInMethod:    entity.SignInMethodGoogle,
		ProviderSubject: federated.Subject,
		EmailVerified:   true,
	}
	if err := u.identityRepo.Create(ctx, identity); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSignInMethodMismatch
		}
		u.log.Warnf("Failed to create federated identity: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogEvent(ctx, &identity.ID, entity.AuditActionIdentitySignup, entity.JSON{
		"sign_in_method": identity.SignInMethod,
	}); err != nil {
		u.log.Warnf("Failed to audit signup: %+v", err)
	}

	// Seed the names so the complete-profile form starts filled in.
	if federated.GivenName != "" || federated.FamilyName != "" {
		fields := repository.Fields{
			entity.FieldFirstName: federated.GivenName,
			entity.FieldLastName:  federated.FamilyName,
			entity.FieldEmail:     email,
		}
		if err := u.userRepo.Merge(ctx, identity.ID, fields); err != nil {
			u.log.Warnf("Failed to seed profile names: %+v", err)
		}
	}

	return identity, nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	// Validate refresh token
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	// Refresh tokens are single use
	if err := u.tokenStore.ConsumeRefreshToken(ctx, claims.UserID, claims.TokenID); err != nil {
		if errors.Is(err, service.ErrTokenNotFound) {
			return nil, ErrTokenRevoked
		}
		u.log.Warnf("Failed to consume refresh token: %+v", err)
		return nil, err
	}

	return u.issueTokens(ctx, claims.UserID, claims.Email, claims.SignInMethod)
}

func (u *authUsecase) Logout(ctx context.Context, userID uuid.UUID, accessTokenID, refreshToken string) error {
	refreshTokenID := ""
	if refreshToken != "" {
		claims, err := u.jwtService.ValidateToken(refreshToken)
		if err == nil && claims.TokenType == jwt.RefreshToken && claims.UserID == userID {
			refreshTokenID = claims.TokenID
		}
	}

	if err := u.tokenStore.RevokeTokens(ctx, userID, accessTokenID, refreshTokenID); err != nil {
		u.log.Warnf("Failed to revoke tokens: %+v", err)
		return err
	}
	return nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.CurrentUserResponse, error) {
	identity, err := u.identityRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find identity by ID: %+v", err)
		return nil, err
	}
	if identity == nil {
		return nil, ErrUserNotFound
	}

	profile, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find profile by ID: %+v", err)
		return nil, err
	}

	return &dto.CurrentUserResponse{
		Identity: *converter.IdentityToResponse(identity),
		Profile:  converter.UserProfileToResponse(profile),
	}, nil
}

func (u *authUsecase) ResendVerificationEmail(ctx context.Context, userID uuid.UUID) error {
	identity, err := u.identityRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find identity by ID: %+v", err)
		return err
	}
	if identity == nil {
		return ErrUserNotFound
	}
	if !identity.RequiresEmailConfirmation() || identity.EmailVerified {
		return ErrEmailAlreadyVerified
	}

	if err := u.sendVerification(ctx, identity); err != nil {
		u.log.Warnf("Failed to send verification email: %+v", err)
		return err
	}
	return nil
}

func (u *authUsecase) ConfirmEmail(ctx context.Context, req *dto.ConfirmEmailRequest) (*dto.IdentityResponse, error) {
	identityID, err := u.tokenStore.ConsumeEmailVerificationToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, service.ErrTokenNotFound) {
			return nil, ErrInvalidToken
		}
		u.log.Warnf("Failed to consume email verification token: %+v", err)
		return nil, err
	}

	if err := u.identityRepo.MarkEmailVerified(ctx, identityID); err != nil {
		u.log.Warnf("Failed to mark email verified: %+v", err)
		return nil, err
	}

	identity, err := u.identityRepo.FindByID(ctx, identityID)
	if err != nil {
		u.log.Warnf("Failed to find identity by ID: %+v", err)
		return nil, err
	}
	if identity == nil {
		return nil, ErrUserNotFound
	}

	if err := u.auditService.LogEvent(ctx, &identity.ID, entity.AuditActionIdentityEmailConfirm, nil); err != nil {
		u.log.Warnf("Failed to audit email confirmation: %+v", err)
	}

	return converter.IdentityToResponse(identity), nil
}

func (u *authUsecase) sendVerification(ctx context.Context, identity *entity.Identity) error {
	token := uuid.NewString()
	if err := u.tokenStore.SaveEmailVerificationToken(ctx, token, identity.ID, u.cfg.EmailTokenExpiry); err != nil {
		return err
	}
	return u.mailer.SendVerificationEmail(ctx, identity.Email, token)
}

func (u *authUsecase) authenticate(ctx context.Context, identity *entity.Identity) (*dto.AuthResponse, error) {
	tokens, err := u.issueTokens(ctx, identity.ID, identity.Email, string(identity.SignInMethod))
	if err != nil {
		return nil, err
	}
	u.metrics.RecordAuthAttempt(string(identity.SignInMethod), "success")

	return &dto.AuthResponse{
		Identity: *converter.IdentityToResponse(identity),
		Tokens:   *tokens,
	}, nil
}

func (u *authUsecase) issueTokens(ctx context.Context, userID uuid.UUID, email, signInMethod string) (*dto.TokenResponse, error) {
	// Generate tokens
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(userID, email, signInMethod)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(userID, email, signInMethod)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	// Store tokens in Redis
	if err := u.tokenStore.StoreAccessToken(ctx, userID, accessTokenID, u.jwtService.GetAccessExpiry()); err != nil {
		u.log.Warnf("Failed to store access token: %+v", err)
		return nil, err
	}

	if err := u.tokenStore.StoreRefreshToken(ctx, userID, refreshTokenID, u.jwtService.GetRefreshExpiry()); err != nil {
		u.log.Warnf("Failed to store refresh token: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
