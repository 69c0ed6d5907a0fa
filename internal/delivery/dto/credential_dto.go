package dto

// SubmitCredentialsRequest carries the multipart form fields; the license file
// travels separately as a LicenseFile.
type SubmitCredentialsRequest struct {
	FullName            string `json:"full_name" validate:"required,min=2,max=255"`
	StateOfRegistration string `json:"state_of_registration" validate:"required,max=100"`
	MedicalCouncilID    string `json:"medical_council_id" validate:"required,max=100"`
}

type LicenseFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type CredentialStatusResponse struct {
	VerificationStatus string                 `json:"verification_status,omitempty"`
	Stage              string                 `json:"stage"`
	Submitted          bool                   `json:"submitted"`
	Doctor             *DoctorProfileResponse `json:"doctor,omitempty"`
}
