package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LicenseUploadStatus tracks the background license upload.
type LicenseUploadStatus string

const (
	LicenseUploadPending  LicenseUploadStatus = "pending"
	LicenseUploadUploaded LicenseUploadStatus = "uploaded"
	LicenseUploadFailed   LicenseUploadStatus = "failed"
)

// DoctorProfile is the doctor-specific child document of a UserProfile.
type DoctorProfile struct {
	UserID              uuid.UUID           `gorm:"type:uuid;primaryKey" json:"user_id"`
	FullName            string              `gorm:"type:varchar(255)" json:"full_name"`
	StateOfRegistration string              `gorm:"type:varchar(100)" json:"state_of_registration"`
	MedicalCouncilID    string              `gorm:"column:medical_council_id;type:varchar(100);index" json:"medical_council_id"`
	NPINumber           string              `gorm:"column:npi_number;type:varchar(50)" json:"-"`
	LicenseDocument     string              `gorm:"type:text" json:"license_document,omitempty"`
	LicenseUploadStatus LicenseUploadStatus `gorm:"type:varchar(20)" json:"license_upload_status,omitempty"`
	// ManualVerificationRequired is set by an administrator once credentials are
	// approved; it gates the profile completion and verification call stages.
	ManualVerificationRequired bool            `gorm:"not null" json:"manual_verification_required"`
	Specialization             string          `gorm:"type:varchar(100);index" json:"specialization,omitempty"`
	ExperienceYears            int             `json:"experience_years"`
	Bio                        string          `gorm:"type:text" json:"bio,omitempty"`
	ConsultationFee            decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"consultation_fee"`
	Availability               Availability    `gorm:"type:jsonb" json:"availability,omitempty"`
	VerificationCallAt         *time.Time      `json:"verification_call_at,omitempty"`
	CreatedAt                  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt                  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}

// HasSubmittedCredentials is the canonical "credentials submitted" signal.
func (d *DoctorProfile) HasSubmittedCredentials() bool {
	return d != nil && strings.TrimSpace(d.MedicalCouncilID) != ""
}

// MigrateLegacyCredentials moves a legacy NPI number into MedicalCouncilID.
func (d *DoctorProfile) MigrateLegacyCredentials() {
	if d == nil {
		return
	}
	if strings.TrimSpace(d.MedicalCouncilID) == "" && strings.TrimSpace(d.NPINumber) != "" {
		d.MedicalCouncilID = d.NPINumber
	}
}

// Availability maps a YYYY-MM-DD date to its ordered HH:MM slots.
type Availability map[string][]string

// Dates returns the dates with at least one slot, ascending.
func (a Availability) Dates() []string {
	dates := make([]string, 0, len(a))
	for date, slots := range a {
		if len(slots) > 0 {
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)
	return dates
}

func (a Availability) HasSlot(date, slot string) bool {
	for _, s := range a[date] {
		if s == slot {
			return true
		}
	}
	return false
}

// Value returns json value, implement driver.Valuer interface
func (a Availability) Value() (driver.Value, error) {
	if len(a) == 0 {
		return []byte("{}"), nil
	}
	return json.Marshal(a)
}

// Scan scan value into Availability, implements sql.Scanner interface
func (a *Availability) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal availability value:", value))
	}

	result := map[string][]string{}
	err := json.Unmarshal(bytes, &result)
	*a = Availability(result)
	return err
}
