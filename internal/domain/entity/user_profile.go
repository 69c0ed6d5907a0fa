package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role of a user profile.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

// VerificationStatus is meaningful only for doctors.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

// UserProfile is keyed by identity id and written with merge semantics.
type UserProfile struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	Role               Role               `gorm:"type:varchar(20);index" json:"role,omitempty"`
	FirstName          string             `gorm:"type:varchar(100)" json:"first_name,omitempty"`
	LastName           string             `gorm:"type:varchar(100)" json:"last_name,omitempty"`
	Username           string             `gorm:"type:varchar(100)" json:"username,omitempty"`
	Email              string             `gorm:"type:varchar(255)" json:"email,omitempty"`
	VerificationStatus VerificationStatus `gorm:"type:varchar(20);index" json:"verification_status,omitempty"`
	CreatedAt          time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

func (p *UserProfile) HasRole() bool {
	return p != nil && p.Role != ""
}

func (p *UserProfile) IsDoctor() bool {
	return p != nil && p.Role == RoleDoctor
}

func (p *UserProfile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

func (p *UserProfile) HasUsername() bool {
	return p != nil && strings.TrimSpace(p.Username) != ""
}

// IsVerifiedDoctor gates public listing and doctor-only features.
func (p *UserProfile) IsVerifiedDoctor() bool {
	return p.IsDoctor() && p.VerificationStatus == VerificationVerified
}

func (p *UserProfile) DisplayName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}
