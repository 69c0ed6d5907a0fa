package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type GoogleCallbackRequest struct {
	Code  string `json:"code" validate:"required"`
	State string `json:"state" validate:"required"`
}

type ConfirmEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type IdentityResponse struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	SignInMethod  string    `json:"sign_in_method"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

type AuthResponse struct {
	Identity IdentityResponse `json:"identity"`
	Tokens   TokenResponse    `json:"tokens"`
}

type CurrentUserResponse struct {
	Identity IdentityResponse     `json:"identity"`
	Profile  *UserProfileResponse `json:"profile,omitempty"`
}

type GoogleStartResponse struct {
	AuthURL string `json:"auth_url"`
}
