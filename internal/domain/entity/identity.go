package entity

import (
	"time"

	"github.com/google/uuid"
)

// SignInMethod is how an identity authenticates.
type SignInMethod string

const (
	SignInMethodPassword SignInMethod = "password"
	SignInMethodGoogle   SignInMethod = "google"
)

// Identity is the identity-provider record. Profile data lives in UserProfile.
type Identity struct {
	ID              uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Email           string       `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash    string       `gorm:"type:text" json:"-"`
	SignInMethod    SignInMethod `gorm:"type:varchar(20);not null" json:"sign_in_method"`
	ProviderSubject string       `gorm:"type:varchar(255);index" json:"-"`
	EmailVerified   bool         `gorm:"not null" json:"email_verified"`
	CreatedAt       time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Identity) TableName() string {
	return "identities"
}

// RequiresEmailConfirmation reports whether the sign-in method needs a confirmed
// email. Federated identities are verified by their provider.
func (i *Identity) RequiresEmailConfirmation() bool {
	return i.SignInMethod == SignInMethodPassword
}
