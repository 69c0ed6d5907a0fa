package mongodoc

import (
	"time"

	"docconnect/internal/domain/entity"
	domainRepo "docconnect/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	UserProfilesCollection   = "user_profiles"
	DoctorProfilesCollection = "doctor_profiles"
)

type userProfileDocument struct {
	ID                 string    `bson:"_id"`
	Role               string    `bson:"role,omitempty"`
	FirstName          string    `bson:"first_name,omitempty"`
	LastName           string    `bson:"last_name,omitempty"`
	Username           string    `bson:"username,omitempty"`
	Email              string    `bson:"email,omitempty"`
	VerificationStatus string    `bson:"verification_status,omitempty"`
	CreatedAt          time.Time `bson:"created_at"`
	UpdatedAt          time.Time `bson:"updated_at"`
}

func (d *userProfileDocument) toEntity() (*entity.UserProfile, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	return &entity.UserProfile{
		ID:                 id,
		Role:               entity.Role(d.Role),
		FirstName:          d.FirstName,
		LastName:           d.LastName,
		Username:           d.Username,
		Email:              d.Email,
		VerificationStatus: entity.VerificationStatus(d.VerificationStatus),
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}, nil
}

type doctorProfileDocument struct {
	UserID                     string              `bson:"_id"`
	FullName                   string              `bson:"full_name,omitempty"`
	StateOfRegistration        string              `bson:"state_of_registration,omitempty"`
	MedicalCouncilID           string              `bson:"medical_council_id,omitempty"`
	NPINumber                  string              `bson:"npi_number,omitempty"`
	LicenseDocument            string              `bson:"license_document,omitempty"`
	LicenseUploadStatus        string              `bson:"license_upload_status,omitempty"`
	ManualVerificationRequired bool                `bson:"manual_verification_required"`
	Specialization             string              `bson:"specialization,omitempty"`
	ExperienceYears            int                 `bson:"experience_years"`
	Bio                        string              `bson:"bio,omitempty"`
	ConsultationFee            string              `bson:"consultation_fee,omitempty"`
	Availability               map[string][]string `bson:"availability,omitempty"`
	VerificationCallAt         *time.Time          `bson:"verification_call_at,omitempty"`
	CreatedAt                  time.Time           `bson:"created_at"`
	UpdatedAt                  time.Time           `bson:"updated_at"`
}

func (d *doctorProfileDocument) toEntity() (*entity.DoctorProfile, error) {
	id, err := uuid.Parse(d.UserID)
	if err != nil {
		return nil, err
	}
	fee := decimal.Zero
	if d.ConsultationFee != "" {
		if fee, err = decimal.NewFromString(d.ConsultationFee); err != nil {
			return nil, err
		}
	}
	profile := &entity.DoctorProfile{
		UserID:                     id,
		FullName:                   d.FullName,
		StateOfRegistration:        d.StateOfRegistration,
		MedicalCouncilID:           d.MedicalCouncilID,
		NPINumber:                  d.NPINumber,
		LicenseDocument:            d.LicenseDocument,
		LicenseUploadStatus:        entity.LicenseUploadStatus(d.LicenseUploadStatus),
		ManualVerificationRequired: d.ManualVerificationRequired,
		Specialization:             d.Specialization,
		ExperienceYears:            d.ExperienceYears,
		Bio:                        d.Bio,
		ConsultationFee:            fee,
		Availability:               entity.Availability(d.Availability),
		VerificationCallAt:         d.VerificationCallAt,
		CreatedAt:                  d.CreatedAt,
		UpdatedAt:                  d.UpdatedAt,
	}
	profile.MigrateLegacyCredentials()
	return profile, nil
}

// mergeUpdate builds an upsert that sets only the given fields.
func mergeUpdate(fields domainRepo.Fields, now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	for name, value := range fields {
		set[name] = bsonValue(value)
	}
	return bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"created_at": now},
	}
}

func bsonValue(v interface{}) interface{} {
	switch val := v.(type) {
	case decimal.Decimal:
		return val.String()
	case entity.Availability:
		return map[string][]string(val)
	case entity.Role:
		return string(val)
	case entity.VerificationStatus:
		return string(val)
	case entity.LicenseUploadStatus:
		return string(val)
	default:
		return v
	}
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
