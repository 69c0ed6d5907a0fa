package entity

// Stored field names shared by the SQL columns and the mongo documents.
const (
	FieldRole               = "role"
	FieldFirstName          = "first_name"
	FieldLastName           = "last_name"
	FieldUsername           = "username"
	FieldEmail              = "email"
	FieldVerificationStatus = "verification_status"

	FieldFullName                   = "full_name"
	FieldStateOfRegistration        = "state_of_registration"
	FieldMedicalCouncilID           = "medical_council_id"
	FieldLicenseDocument            = "license_document"
	FieldLicenseUploadStatus        = "license_upload_status"
	FieldManualVerificationRequired = "manual_verification_required"
	FieldSpecialization             = "specialization"
	FieldExperienceYears            = "experience_years"
	FieldBio                        = "bio"
	FieldConsultationFee            = "consultation_fee"
	FieldAvailability               = "availability"
	FieldVerificationCallAt         = "verification_call_at"
)
